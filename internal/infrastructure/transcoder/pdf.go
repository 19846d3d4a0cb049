package transcoder

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	documentKind        = "pdfs"
	documentExt         = ".pdf"
	documentContentType = "application/pdf"
)

// DocumentTranscoder re-serializes PDFs using shared cross-reference
// object streams with compression enabled. Rendered content is unchanged;
// the output is not guaranteed to be smaller than the input.
type DocumentTranscoder struct{}

func NewDocument() *DocumentTranscoder {
	return &DocumentTranscoder{}
}

func (t *DocumentTranscoder) Transcode(ctx context.Context, data []byte) (*dto.TranscodeResult, error) {
	var buf bytes.Buffer

	err := api.Optimize(bytes.NewReader(data), &buf, t.configuration())
	if err != nil {
		return nil, fmt.Errorf("DocumentTranscoder - Transcode - api.Optimize: %w", err)
	}

	return &dto.TranscodeResult{
		Data:        buf.Bytes(),
		ContentType: documentContentType,
		Kind:        documentKind,
		Ext:         documentExt,
	}, nil
}

// configuration is built per call, pdfcpu mutates it while processing.
func (t *DocumentTranscoder) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	return conf
}
