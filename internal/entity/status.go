package entity

type Status string

const (
	Pending    Status = "PENDING"
	Processing Status = "PROCESSING"
	Completed  Status = "COMPLETED"
	Failed     Status = "FAILED"
)

// Terminal reports whether the record does not transition again
// under normal operation.
func (s Status) Terminal() bool {
	return s == Completed || s == Failed
}
