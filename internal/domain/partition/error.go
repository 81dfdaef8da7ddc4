package partition

import "errors"

var (
	ErrMalformedPartition = errors.New("malformed partition")
	ErrMalformedDocument  = errors.New("malformed document")
	ErrLegacyDocument     = errors.New("document is not partitioned")
)

// MalformedError описывает раздел, который не удалось разобрать
type MalformedError struct {
	Username string
	Err      error
}

func (e *MalformedError) Error() string {
	if e.Username != "" {
		return "malformed partition " + e.Username + ": " + e.Err.Error()
	}
	return "malformed partition: " + e.Err.Error()
}

func (e *MalformedError) Unwrap() []error {
	return []error{ErrMalformedPartition, e.Err}
}
