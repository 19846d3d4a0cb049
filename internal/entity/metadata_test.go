package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/entity"
)

func TestCompressionRatio(t *testing.T) {
	tests := []struct {
		name       string
		original   int64
		compressed int64
		want       float64
	}{
		{name: "typical image", original: 5_000_000, compressed: 1_000_000, want: 80},
		{name: "rounded to 2 decimals", original: 5_000_000, compressed: 1_234_567, want: 75.31},
		{name: "thirds round down", original: 3, compressed: 2, want: 33.33},
		{name: "no reduction", original: 1024, compressed: 1024, want: 0},
		{name: "derivative grew", original: 1000, compressed: 1250, want: -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.CompressionRatio(tt.original, tt.compressed); got != tt.want {
				t.Errorf("CompressionRatio(%d, %d) = %v, want %v", tt.original, tt.compressed, got, tt.want)
			}
		})
	}
}

func TestCompletedMetadata(t *testing.T) {
	at := time.Date(2026, 1, 18, 12, 0, 0, 0, time.UTC)

	meta := entity.CompletedMetadata("processed/images/abc123.webp", "image/webp", 5_000_000, 1_000_000, at)

	if got := meta["processedKey"]; got != "processed/images/abc123.webp" {
		t.Errorf("processedKey = %v", got)
	}
	if got := meta["contentType"]; got != "image/webp" {
		t.Errorf("contentType = %v", got)
	}
	if got := meta["originalFileSize"]; got != int64(5_000_000) {
		t.Errorf("originalFileSize = %v", got)
	}
	if got := meta["compressedFileSize"]; got != int64(1_000_000) {
		t.Errorf("compressedFileSize = %v", got)
	}
	if got := meta["compressionRatio"]; got != float64(80) {
		t.Errorf("compressionRatio = %v", got)
	}
	if got := meta["processedAt"]; got != "2026-01-18T12:00:00Z" {
		t.Errorf("processedAt = %v", got)
	}
}

func TestFailedMetadata(t *testing.T) {
	at := time.Date(2026, 1, 18, 12, 0, 0, 0, time.UTC)

	meta := entity.FailedMetadata(errors.New("decode failed"), at)

	if got := meta["error"]; got != "decode failed" {
		t.Errorf("error = %v", got)
	}
	if got := meta["failedAt"]; got != "2026-01-18T12:00:00Z" {
		t.Errorf("failedAt = %v", got)
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := map[entity.Status]bool{
		entity.Pending:    false,
		entity.Processing: false,
		entity.Completed:  true,
		entity.Failed:     true,
	}

	for status, want := range terminal {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}
