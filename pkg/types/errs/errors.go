package errs

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("record already exists")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrInvalidKey      = errors.New("invalid object key")
)
