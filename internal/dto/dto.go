package dto

// StorageRecord is one object-creation notification, already decoded
// from the transport payload.
type StorageRecord struct {
	Bucket string
	Key    string
}

// StorageObject is a fetched object together with what the store
// declared about it.
type StorageObject struct {
	Data          []byte
	ContentType   string
	ContentLength int64
}

// TranscodeResult is the contract every transcoder variant satisfies:
// output bytes plus the derivative namespace and key suffix they belong under.
type TranscodeResult struct {
	Data        []byte
	ContentType string
	Kind        string // derivative folder, e.g. "images", "pdfs"
	Ext         string // output key suffix, e.g. ".webp", ".pdf"
}

// UploadTicket is what a client needs to perform a write-once upload.
type UploadTicket struct {
	FileID    string `json:"fileId"`
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

type Disposition string

const (
	DispositionCompleted Disposition = "completed"
	DispositionSkipped   Disposition = "skipped"
	DispositionFailed    Disposition = "failed"
)

// IngestResult is the two-stage outcome of processing one notification:
// Err is the primary processing result, StatusErr the secondary bookkeeping
// result. Only the secondary one is ever logged and dropped.
type IngestResult struct {
	Disposition  Disposition
	FileID       string
	ProcessedKey string
	Ratio        float64
	SkipReason   string

	Err       error
	StatusErr error
}
