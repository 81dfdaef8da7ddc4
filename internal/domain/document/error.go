package document

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionMismatch = errors.New("document version mismatch")
	ErrInvalidDocument = errors.New("document must be a JSON object")
	ErrInvalidVersion  = errors.New("invalid document version")
)
