package sync

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrRemoteUnavailable = errors.New("remote document store unavailable")
	ErrVersionConflict   = errors.New("remote document version conflict")
	ErrLocalPersistence  = errors.New("local persistence failed")
)
