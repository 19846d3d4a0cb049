package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
	"github.com/ashabelnikov/file-pipeline/internal/repo"
	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/internal/usecase/transcode"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
)

// IngestUseCase drives one object-creation notification through the
// pipeline: guard, fetch, classify, transcode, write the derivative and
// transition the status record. It only ever reads from the original
// namespace and writes to the processed one.
type IngestUseCase struct {
	objects   repo.ObjectRepo
	metadata  repo.FileMetadataRepo
	transcode usecase.TranscodeUseCase

	logger logger.Interface

	maxObjectSize   int64
	originalPrefix  string
	processedPrefix string
}

func New(
	objects repo.ObjectRepo,
	metadata repo.FileMetadataRepo,
	transcodeUC usecase.TranscodeUseCase,
	l logger.Interface,
	maxObjectSize int64,
	originalPrefix string,
	processedPrefix string,
) *IngestUseCase {
	return &IngestUseCase{
		objects:         objects,
		metadata:        metadata,
		transcode:       transcodeUC,
		logger:          l,
		maxObjectSize:   maxObjectSize,
		originalPrefix:  originalPrefix,
		processedPrefix: processedPrefix,
	}
}

// ProcessRecord never returns a raised error: the primary outcome lives in
// Result.Err, the bookkeeping outcome in Result.StatusErr. A failing status
// write is logged and dropped so one record cannot block the batch.
func (uc *IngestUseCase) ProcessRecord(ctx context.Context, rec dto.StorageRecord) dto.IngestResult {
	// 1. namespace guard: reacting to our own derivative writes would loop forever
	if !strings.HasPrefix(rec.Key, uc.originalPrefix) {
		return skipped("", "key outside the original namespace")
	}

	// 2. identity
	fileID := fileIDFromKey(rec.Key, uc.originalPrefix)
	if fileID == "" {
		return skipped("", "no fileId segment in key")
	}

	// 3. fetch
	obj, err := uc.objects.Download(ctx, rec.Key)
	if err != nil {
		return uc.fail(ctx, fileID, fmt.Errorf("IngestUseCase - ProcessRecord - uc.objects.Download: %w", err))
	}

	// 4. size guard: oversized objects should have been rejected at upload
	// time, so this is an out-of-band anomaly, not a processing failure
	if obj.ContentLength > uc.maxObjectSize {
		uc.logger.Warn("ingest - skipping oversized object, key=%s, size=%d", rec.Key, obj.ContentLength)

		return skipped(fileID, "object exceeds the configured size limit")
	}

	// 5. classification: unsupported types leave the status untouched
	if transcode.Classify(obj.ContentType) == transcode.Unsupported {
		uc.logger.Warn("ingest - skipping unsupported content type %q, key=%s", obj.ContentType, rec.Key)

		return skipped(fileID, "unsupported content type")
	}

	// From here on the record is ours: mark it in flight.
	err = uc.metadata.Transition(ctx, fileID, entity.Processing, nil)
	if err != nil {
		return uc.fail(ctx, fileID, fmt.Errorf("IngestUseCase - ProcessRecord - uc.metadata.Transition: %w", err))
	}

	result, err := uc.transcode.Transcode(ctx, obj.ContentType, obj.Data)
	if err != nil {
		return uc.fail(ctx, fileID, fmt.Errorf("IngestUseCase - ProcessRecord - uc.transcode.Transcode: %w", err))
	}

	// 6. write the derivative
	processedKey := uc.processedPrefix + result.Kind + "/" + fileID + result.Ext

	err = uc.objects.Upload(ctx, processedKey, result.Data, result.ContentType)
	if err != nil {
		return uc.fail(ctx, fileID, fmt.Errorf("IngestUseCase - ProcessRecord - uc.objects.Upload: %w", err))
	}

	// 7. terminal record with derived metrics
	meta := entity.CompletedMetadata(processedKey, result.ContentType, obj.ContentLength, int64(len(result.Data)), time.Now())

	res := dto.IngestResult{
		Disposition:  dto.DispositionCompleted,
		FileID:       fileID,
		ProcessedKey: processedKey,
		Ratio:        entity.CompressionRatio(obj.ContentLength, int64(len(result.Data))),
	}

	err = uc.metadata.Transition(ctx, fileID, entity.Completed, meta)
	if err != nil {
		// The derivative exists, only the bookkeeping is stale; redelivery
		// rewrites an equivalent record. Logged for alerting, never raised.
		res.StatusErr = err
		uc.logger.Error(err, "IngestUseCase - ProcessRecord - completed status write failed")
	}

	return res
}

// fail attempts the FAILED transition for the primary error. A failure of
// that write itself is the one error class that is swallowed entirely.
func (uc *IngestUseCase) fail(ctx context.Context, fileID string, cause error) dto.IngestResult {
	res := dto.IngestResult{
		Disposition: dto.DispositionFailed,
		FileID:      fileID,
		Err:         cause,
	}

	err := uc.metadata.Transition(ctx, fileID, entity.Failed, entity.FailedMetadata(cause, time.Now()))
	if err != nil {
		res.StatusErr = err
		uc.logger.Error(err, "IngestUseCase - fail - failed status write failed")
	}

	return res
}

func skipped(fileID, reason string) dto.IngestResult {
	return dto.IngestResult{
		Disposition: dto.DispositionSkipped,
		FileID:      fileID,
		SkipReason:  reason,
	}
}

// fileIDFromKey extracts the path segment following the original-objects
// prefix: original/{fileId}/{fileName} -> fileId.
func fileIDFromKey(key, prefix string) string {
	rest := strings.TrimPrefix(key, prefix)

	fileID, _, _ := strings.Cut(rest, "/")

	return fileID
}
