package ingest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/internal/entity"
	"github.com/ashabelnikov/file-pipeline/internal/usecase/ingest"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeObjects struct {
	object      *dto.StorageObject
	downloadErr error
	uploadErr   error

	downloads   []string
	uploads     map[string][]byte
	uploadTypes map[string]string
}

func (f *fakeObjects) Download(_ context.Context, key string) (*dto.StorageObject, error) {
	f.downloads = append(f.downloads, key)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.object, nil
}

func (f *fakeObjects) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
		f.uploadTypes = make(map[string]string)
	}
	f.uploads[key] = data
	f.uploadTypes[key] = contentType
	return nil
}

func (f *fakeObjects) PresignPut(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func (f *fakeObjects) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

type transitionCall struct {
	fileID   string
	status   entity.Status
	metadata map[string]any
}

type fakeMetadata struct {
	errFor map[entity.Status]error

	transitions []transitionCall
}

func (f *fakeMetadata) Create(context.Context, *entity.FileRecord) error { return nil }

func (f *fakeMetadata) Transition(_ context.Context, fileID string, status entity.Status, metadata map[string]any) error {
	if err := f.errFor[status]; err != nil {
		return err
	}
	f.transitions = append(f.transitions, transitionCall{fileID: fileID, status: status, metadata: metadata})
	return nil
}

func (f *fakeMetadata) GetByID(context.Context, string) (*entity.FileRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMetadata) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeTranscode struct {
	result *dto.TranscodeResult
	err    error
}

func (f *fakeTranscode) Transcode(context.Context, string, []byte) (*dto.TranscodeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

const maxObjectSize = 10 * 1024 * 1024

func newUseCase(objects *fakeObjects, metadata *fakeMetadata, tc *fakeTranscode) *ingest.IngestUseCase {
	return ingest.New(objects, metadata, tc, nopLogger{}, maxObjectSize, "original/", "processed/")
}

func webpResult(size int) *dto.TranscodeResult {
	return &dto.TranscodeResult{
		Data:        make([]byte, size),
		ContentType: "image/webp",
		Kind:        "images",
		Ext:         ".webp",
	}
}

func TestProcessRecordSkipsForeignNamespace(t *testing.T) {
	objects := &fakeObjects{}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "processed/images/abc123.webp"})

	if res.Disposition != dto.DispositionSkipped {
		t.Fatalf("disposition = %s, want skipped", res.Disposition)
	}
	if len(objects.downloads) != 0 || len(objects.uploads) != 0 {
		t.Error("expected no object store access")
	}
	if len(metadata.transitions) != 0 {
		t.Errorf("expected no status transitions, got %v", metadata.transitions)
	}
}

func TestProcessRecordSkipsKeyWithoutFileID(t *testing.T) {
	objects := &fakeObjects{}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/"})

	if res.Disposition != dto.DispositionSkipped {
		t.Fatalf("disposition = %s, want skipped", res.Disposition)
	}
	if len(objects.downloads) != 0 {
		t.Error("expected no fetch for key without fileId segment")
	}
}

func TestProcessRecordSkipsOversizedObject(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          []byte("x"),
		ContentType:   "image/jpeg",
		ContentLength: maxObjectSize + 1,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: webpResult(1)})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/huge.jpg"})

	if res.Disposition != dto.DispositionSkipped {
		t.Fatalf("disposition = %s, want skipped", res.Disposition)
	}
	if len(objects.uploads) != 0 {
		t.Error("expected no derivative write for oversized object")
	}
	if len(metadata.transitions) != 0 {
		t.Errorf("expected status untouched, got %v", metadata.transitions)
	}
}

func TestProcessRecordSkipsUnsupportedContentType(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          []byte("hello"),
		ContentType:   "text/plain",
		ContentLength: 5,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: webpResult(1)})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/notes.txt"})

	if res.Disposition != dto.DispositionSkipped {
		t.Fatalf("disposition = %s, want skipped", res.Disposition)
	}
	if len(objects.uploads) != 0 {
		t.Error("expected no derivative write")
	}
	if len(metadata.transitions) != 0 {
		t.Errorf("expected status untouched, got %v", metadata.transitions)
	}
}

func TestProcessRecordCompletesImage(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          make([]byte, 64),
		ContentType:   "image/jpeg",
		ContentLength: 5_000_000,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: webpResult(1_000_000)})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"})

	if res.Disposition != dto.DispositionCompleted {
		t.Fatalf("disposition = %s, err = %v", res.Disposition, res.Err)
	}
	if res.FileID != "abc123" {
		t.Errorf("fileID = %q", res.FileID)
	}
	if res.ProcessedKey != "processed/images/abc123.webp" {
		t.Errorf("processedKey = %q", res.ProcessedKey)
	}
	if res.StatusErr != nil {
		t.Errorf("unexpected status error: %v", res.StatusErr)
	}

	if objects.uploadTypes["processed/images/abc123.webp"] != "image/webp" {
		t.Errorf("derivative content type = %q", objects.uploadTypes["processed/images/abc123.webp"])
	}

	if len(metadata.transitions) != 2 {
		t.Fatalf("transitions = %v", metadata.transitions)
	}
	if metadata.transitions[0].status != entity.Processing {
		t.Errorf("first transition = %s, want PROCESSING", metadata.transitions[0].status)
	}

	completed := metadata.transitions[1]
	if completed.status != entity.Completed {
		t.Fatalf("second transition = %s, want COMPLETED", completed.status)
	}
	if got := completed.metadata["originalFileSize"]; got != int64(5_000_000) {
		t.Errorf("originalFileSize = %v", got)
	}
	if got := completed.metadata["compressedFileSize"]; got != int64(1_000_000) {
		t.Errorf("compressedFileSize = %v", got)
	}
	if got := completed.metadata["compressionRatio"]; got != float64(80) {
		t.Errorf("compressionRatio = %v", got)
	}
	if got := completed.metadata["processedKey"]; got != "processed/images/abc123.webp" {
		t.Errorf("processedKey metadata = %v", got)
	}
}

func TestProcessRecordCompletesDocument(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          []byte("%PDF-1.4 ..."),
		ContentType:   "application/pdf",
		ContentLength: 2048,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: &dto.TranscodeResult{
		Data:        make([]byte, 4096),
		ContentType: "application/pdf",
		Kind:        "pdfs",
		Ext:         ".pdf",
	}})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/xyz789/doc.pdf"})

	if res.Disposition != dto.DispositionCompleted {
		t.Fatalf("disposition = %s, err = %v", res.Disposition, res.Err)
	}
	if res.ProcessedKey != "processed/pdfs/xyz789.pdf" {
		t.Errorf("processedKey = %q", res.ProcessedKey)
	}

	// A derivative larger than the original is allowed, recorded as is.
	completed := metadata.transitions[len(metadata.transitions)-1]
	if got := completed.metadata["compressionRatio"]; got != float64(-100) {
		t.Errorf("compressionRatio = %v, want -100", got)
	}
}

func TestProcessRecordFetchFailure(t *testing.T) {
	objects := &fakeObjects{downloadErr: errors.New("object missing")}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"})

	if res.Disposition != dto.DispositionFailed {
		t.Fatalf("disposition = %s, want failed", res.Disposition)
	}
	if res.Err == nil {
		t.Fatal("expected primary error")
	}

	if len(metadata.transitions) != 1 || metadata.transitions[0].status != entity.Failed {
		t.Fatalf("transitions = %v", metadata.transitions)
	}
	if msg, _ := metadata.transitions[0].metadata["error"].(string); msg == "" {
		t.Error("expected non-empty error metadata")
	}
}

func TestProcessRecordTranscodeFailure(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          []byte{0xff, 0xd8}, // truncated jpeg
		ContentType:   "image/jpeg",
		ContentLength: 2,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{err: errors.New("image: unexpected EOF")})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"})

	if res.Disposition != dto.DispositionFailed {
		t.Fatalf("disposition = %s, want failed", res.Disposition)
	}
	if len(objects.uploads) != 0 {
		t.Error("expected no derivative write on transcode failure")
	}

	last := metadata.transitions[len(metadata.transitions)-1]
	if last.status != entity.Failed {
		t.Fatalf("last transition = %s, want FAILED", last.status)
	}
	if msg, _ := last.metadata["error"].(string); msg == "" {
		t.Error("expected non-empty error metadata")
	}
}

func TestProcessRecordCompletedStatusWriteFailure(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          make([]byte, 64),
		ContentType:   "image/jpeg",
		ContentLength: 64,
	}}
	metadata := &fakeMetadata{errFor: map[entity.Status]error{
		entity.Completed: errors.New("store unavailable"),
	}}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: webpResult(32)})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"})

	// Primary result stays successful, only the bookkeeping failed.
	if res.Disposition != dto.DispositionCompleted {
		t.Fatalf("disposition = %s, want completed", res.Disposition)
	}
	if res.Err != nil {
		t.Errorf("unexpected primary error: %v", res.Err)
	}
	if res.StatusErr == nil {
		t.Fatal("expected bookkeeping error")
	}
	if len(objects.uploads) != 1 {
		t.Error("derivative should have been written")
	}
}

func TestProcessRecordFailedStatusWriteFailure(t *testing.T) {
	objects := &fakeObjects{downloadErr: errors.New("object missing")}
	metadata := &fakeMetadata{errFor: map[entity.Status]error{
		entity.Failed: errors.New("store unavailable"),
	}}
	uc := newUseCase(objects, metadata, &fakeTranscode{})

	res := uc.ProcessRecord(context.Background(), dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"})

	if res.Disposition != dto.DispositionFailed {
		t.Fatalf("disposition = %s, want failed", res.Disposition)
	}
	if res.Err == nil || res.StatusErr == nil {
		t.Fatalf("expected both primary and bookkeeping errors, got %v / %v", res.Err, res.StatusErr)
	}
}

func TestProcessRecordIdempotentRedelivery(t *testing.T) {
	objects := &fakeObjects{object: &dto.StorageObject{
		Data:          make([]byte, 64),
		ContentType:   "image/jpeg",
		ContentLength: 64,
	}}
	metadata := &fakeMetadata{}
	uc := newUseCase(objects, metadata, &fakeTranscode{result: webpResult(32)})

	rec := dto.StorageRecord{Bucket: "b", Key: "original/abc123/photo.jpg"}

	first := uc.ProcessRecord(context.Background(), rec)
	second := uc.ProcessRecord(context.Background(), rec)

	if first.Disposition != dto.DispositionCompleted || second.Disposition != dto.DispositionCompleted {
		t.Fatalf("dispositions = %s / %s", first.Disposition, second.Disposition)
	}
	if first.ProcessedKey != second.ProcessedKey {
		t.Errorf("redelivery produced a different key: %q vs %q", first.ProcessedKey, second.ProcessedKey)
	}

	// One derivative object, overwritten in place.
	if len(objects.uploads) != 1 {
		t.Errorf("uploads = %d keys, want 1", len(objects.uploads))
	}

	// An equivalent terminal record each time.
	var completed []transitionCall
	for _, tr := range metadata.transitions {
		if tr.status == entity.Completed {
			completed = append(completed, tr)
		}
	}
	if len(completed) != 2 {
		t.Fatalf("completed transitions = %d, want 2", len(completed))
	}
	if completed[0].metadata["compressionRatio"] != completed[1].metadata["compressionRatio"] {
		t.Error("redelivery produced a different terminal record")
	}
}
