package usecase

import (
	"context"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
)

type (
	FileUseCase interface {
		RegisterUpload(ctx context.Context, fileName, fileType string, fileSize int64) (*dto.UploadTicket, error)
		GetRecord(ctx context.Context, fileID string) (*entity.FileRecord, error)
		DownloadURL(ctx context.Context, key string) (string, error)
		NotifyUploaded(ctx context.Context, fileID, key string) error
		ReclaimExpired(ctx context.Context) error
	}

	IngestUseCase interface {
		ProcessRecord(ctx context.Context, rec dto.StorageRecord) dto.IngestResult
	}

	TranscodeUseCase interface {
		Transcode(ctx context.Context, contentType string, data []byte) (*dto.TranscodeResult, error)
	}
)
