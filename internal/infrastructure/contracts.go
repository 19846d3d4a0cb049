package infrastructure

import (
	"context"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
)

type (
	// Transcoder turns original bytes into a compressed derivative.
	// Implementations must not fail on inputs that are already small
	// enough; decode failures propagate.
	Transcoder interface {
		Transcode(ctx context.Context, data []byte) (*dto.TranscodeResult, error)
	}

	EventsPublisher interface {
		PublishObjectCreated(ctx context.Context, bucket, key string) error
		Close() error
	}
)
