package events

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeIngest struct {
	failKeys map[string]bool

	records []dto.StorageRecord
}

func (f *fakeIngest) ProcessRecord(_ context.Context, rec dto.StorageRecord) dto.IngestResult {
	f.records = append(f.records, rec)

	if f.failKeys[rec.Key] {
		return dto.IngestResult{Disposition: dto.DispositionFailed}
	}
	return dto.IngestResult{Disposition: dto.DispositionCompleted, ProcessedKey: "processed/images/x.webp"}
}

func newController(ingest *fakeIngest) *EventsController {
	return &EventsController{
		ingest: ingest,
		logger: nopLogger{},
	}
}

func TestProcessMessageDropsMalformedPayload(t *testing.T) {
	ingest := &fakeIngest{}
	c := newController(ingest)

	c.processMessage(context.Background(), kafka.Message{Value: []byte("{not json")})

	if len(ingest.records) != 0 {
		t.Errorf("records = %v, want none", ingest.records)
	}
}

func TestProcessMessageDecodesObjectKey(t *testing.T) {
	ingest := &fakeIngest{}
	c := newController(ingest)

	payload := []byte(`{
		"Records": [{
			"eventName": "s3:ObjectCreated:Put",
			"s3": {
				"bucket": {"name": "uploads"},
				"object": {"key": "original/abc123/my+photo%281%29.jpg"}
			}
		}]
	}`)

	c.processMessage(context.Background(), kafka.Message{Value: payload})

	if len(ingest.records) != 1 {
		t.Fatalf("records = %v", ingest.records)
	}
	got := ingest.records[0]
	if got.Bucket != "uploads" {
		t.Errorf("bucket = %q", got.Bucket)
	}
	if got.Key != "original/abc123/my photo(1).jpg" {
		t.Errorf("key = %q, want decoded form", got.Key)
	}
}

func TestProcessMessageContinuesPastFailingRecord(t *testing.T) {
	ingest := &fakeIngest{failKeys: map[string]bool{"original/bad/f.jpg": true}}
	c := newController(ingest)

	payload := []byte(`{
		"Records": [
			{"s3": {"bucket": {"name": "uploads"}, "object": {"key": "original/bad/f.jpg"}}},
			{"s3": {"bucket": {"name": "uploads"}, "object": {"key": "original/good/f.jpg"}}}
		]
	}`)

	c.processMessage(context.Background(), kafka.Message{Value: payload})

	if len(ingest.records) != 2 {
		t.Fatalf("records = %d, want both, got %v", len(ingest.records), ingest.records)
	}
	if ingest.records[1].Key != "original/good/f.jpg" {
		t.Errorf("second record = %v", ingest.records[1])
	}
}
