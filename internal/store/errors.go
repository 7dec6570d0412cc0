package store

import "errors"

// Sentinel error kinds surfaced to the request layer. Operations wrap
// these with context, so callers match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
