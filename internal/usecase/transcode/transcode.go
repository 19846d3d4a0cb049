package transcode

import (
	"context"
	"fmt"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/infrastructure"
	"github.com/ashabelnikov/file-pipeline/pkg/types/errs"
)

type TranscodeUseCase struct {
	image    infrastructure.Transcoder
	document infrastructure.Transcoder
}

func New(image, document infrastructure.Transcoder) *TranscodeUseCase {
	return &TranscodeUseCase{image: image, document: document}
}

func (uc *TranscodeUseCase) Transcode(ctx context.Context, contentType string, data []byte) (*dto.TranscodeResult, error) {
	var result *dto.TranscodeResult
	var err error

	switch Classify(contentType) {
	case Image:
		result, err = uc.image.Transcode(ctx, data)
	case Document:
		result, err = uc.document.Transcode(ctx, data)
	case Unsupported:
		return nil, fmt.Errorf("TranscodeUseCase - Transcode - %q: %w", contentType, errs.ErrUnsupportedType)
	}

	if err != nil {
		return nil, fmt.Errorf("TranscodeUseCase - Transcode: %w", err)
	}

	return result, nil
}
