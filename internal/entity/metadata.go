package entity

import (
	"math"
	"time"
)

// CompressionRatio is the percentage reduction in byte size from original
// to derivative, rounded to 2 decimal places. Negative when the derivative
// came out larger.
func CompressionRatio(originalSize, compressedSize int64) float64 {
	ratio := (1 - float64(compressedSize)/float64(originalSize)) * 100

	return math.Round(ratio*100) / 100
}

func CompletedMetadata(processedKey, contentType string, originalSize, compressedSize int64, processedAt time.Time) map[string]any {
	return map[string]any{
		"processedKey":       processedKey,
		"contentType":        contentType,
		"originalFileSize":   originalSize,
		"compressedFileSize": compressedSize,
		"compressionRatio":   CompressionRatio(originalSize, compressedSize),
		"processedAt":        processedAt.UTC().Format(time.RFC3339),
	}
}

func FailedMetadata(cause error, failedAt time.Time) map[string]any {
	return map[string]any{
		"error":    cause.Error(),
		"failedAt": failedAt.UTC().Format(time.RFC3339),
	}
}
