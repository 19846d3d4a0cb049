package entity

import (
	"time"
)

// FileRecord is the durable lifecycle record of one uploaded file.
// FileID joins the original object, its derivative and this record.
type FileRecord struct {
	FileID string `json:"fileId"`

	Status Status `json:"status"`

	// Declared at upload time, immutable, not re-validated against bytes.
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FileName string `json:"fileName"`

	UploadedAt time.Time `json:"uploadedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`

	// Shape depends on the terminal state, see CompletedMetadata and FailedMetadata.
	Metadata map[string]any `json:"metadata,omitempty"`
}
