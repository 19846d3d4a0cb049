package response

import (
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/entity"
)

type Error struct {
	Error string `json:"error"`
}

// FileRecord is the polling view of a status record. The store-internal
// expiry instant is stripped before exposing the record to callers.
type FileRecord struct {
	FileID     string         `json:"fileId"`
	Status     string         `json:"status"`
	FileType   string         `json:"fileType"`
	FileSize   int64          `json:"fileSize"`
	FileName   string         `json:"fileName"`
	UploadedAt string         `json:"uploadedAt"`
	UpdatedAt  string         `json:"updatedAt"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewFileRecord(record *entity.FileRecord) FileRecord {
	return FileRecord{
		FileID:     record.FileID,
		Status:     string(record.Status),
		FileType:   record.FileType,
		FileSize:   record.FileSize,
		FileName:   record.FileName,
		UploadedAt: record.UploadedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  record.UpdatedAt.UTC().Format(time.RFC3339),
		Metadata:   record.Metadata,
	}
}

type DownloadURL struct {
	DownloadURL string `json:"downloadUrl"`
}
