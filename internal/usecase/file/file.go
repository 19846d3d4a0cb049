package file

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
	"github.com/ashabelnikov/file-pipeline/internal/infrastructure"
	"github.com/ashabelnikov/file-pipeline/internal/repo"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
	"github.com/ashabelnikov/file-pipeline/pkg/types/errs"
	"github.com/google/uuid"
)

type FileUseCase struct {
	objects  repo.ObjectRepo
	metadata repo.FileMetadataRepo
	events   infrastructure.EventsPublisher

	logger logger.Interface

	bucket          string
	originalPrefix  string
	processedPrefix string
	uploadTTL       time.Duration
	downloadTTL     time.Duration
	recordTTL       time.Duration
}

func New(
	objects repo.ObjectRepo,
	metadata repo.FileMetadataRepo,
	events infrastructure.EventsPublisher,
	l logger.Interface,
	bucket string,
	originalPrefix string,
	processedPrefix string,
	uploadTTL time.Duration,
	downloadTTL time.Duration,
	recordTTL time.Duration,
) *FileUseCase {
	return &FileUseCase{
		objects:         objects,
		metadata:        metadata,
		events:          events,
		logger:          l,
		bucket:          bucket,
		originalPrefix:  originalPrefix,
		processedPrefix: processedPrefix,
		uploadTTL:       uploadTTL,
		downloadTTL:     downloadTTL,
		recordTTL:       recordTTL,
	}
}

// RegisterUpload issues a write-once upload URL and creates the PENDING
// record the pipeline will transition once the object lands.
func (uc *FileUseCase) RegisterUpload(ctx context.Context, fileName, fileType string, fileSize int64) (*dto.UploadTicket, error) {
	fileID := uuid.NewString()
	key := uc.originalPrefix + fileID + "/" + sanitizeFileName(fileName)

	uploadURL, err := uc.objects.PresignPut(ctx, key, fileType, uc.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("FileUseCase - RegisterUpload - uc.objects.PresignPut: %w", err)
	}

	now := time.Now()

	record := &entity.FileRecord{
		FileID:     fileID,
		Status:     entity.Pending,
		FileType:   fileType,
		FileSize:   fileSize,
		FileName:   fileName,
		UploadedAt: now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(uc.recordTTL),
	}

	err = uc.metadata.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("FileUseCase - RegisterUpload - uc.metadata.Create: %w", err)
	}

	return &dto.UploadTicket{
		FileID:    fileID,
		Key:       key,
		UploadURL: uploadURL,
	}, nil
}

func (uc *FileUseCase) GetRecord(ctx context.Context, fileID string) (*entity.FileRecord, error) {
	record, err := uc.metadata.GetByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("FileUseCase - GetRecord - uc.metadata.GetByID: %w", err)
	}

	return record, nil
}

// DownloadURL issues a read-only URL for a derivative. Only the processed
// namespace is reachable this way.
func (uc *FileUseCase) DownloadURL(ctx context.Context, key string) (string, error) {
	if !strings.HasPrefix(key, uc.processedPrefix) {
		return "", fmt.Errorf("FileUseCase - DownloadURL - %q: %w", key, errs.ErrInvalidKey)
	}

	url, err := uc.objects.PresignGet(ctx, key, uc.downloadTTL)
	if err != nil {
		return "", fmt.Errorf("FileUseCase - DownloadURL - uc.objects.PresignGet: %w", err)
	}

	return url, nil
}

// NotifyUploaded publishes a synthetic object-created notification, a
// fallback for object stores without native bucket notifications.
func (uc *FileUseCase) NotifyUploaded(ctx context.Context, fileID, key string) error {
	if !strings.HasPrefix(key, uc.originalPrefix+fileID+"/") {
		return fmt.Errorf("FileUseCase - NotifyUploaded - %q: %w", key, errs.ErrInvalidKey)
	}

	_, err := uc.metadata.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("FileUseCase - NotifyUploaded - uc.metadata.GetByID: %w", err)
	}

	err = uc.events.PublishObjectCreated(ctx, uc.bucket, key)
	if err != nil {
		return fmt.Errorf("FileUseCase - NotifyUploaded - uc.events.PublishObjectCreated: %w", err)
	}

	return nil
}

func (uc *FileUseCase) ReclaimExpired(ctx context.Context) error {
	count, err := uc.metadata.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("FileUseCase - ReclaimExpired - uc.metadata.DeleteExpired: %w", err)
	}

	if count > 0 {
		uc.logger.Info("reclaimed expired file records, count = %d", count)
	}

	return nil
}
