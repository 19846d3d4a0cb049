package repo

import (
	"context"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
)

type (
	// ObjectRepo is the object store gateway. The pipeline only ever reads
	// originals and writes derivatives; it never mutates an original.
	ObjectRepo interface {
		Download(ctx context.Context, key string) (*dto.StorageObject, error)
		Upload(ctx context.Context, key string, data []byte, contentType string) error
		PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
		PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	}

	// FileMetadataRepo is the durable status record store keyed by fileId.
	FileMetadataRepo interface {
		Create(ctx context.Context, record *entity.FileRecord) error
		Transition(ctx context.Context, fileID string, status entity.Status, metadata map[string]any) error
		GetByID(ctx context.Context, fileID string) (*entity.FileRecord, error)
		DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	}
)
