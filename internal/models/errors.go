package models

import "errors"

// Domain error kinds. Services wrap these with %w and context; handlers map
// them to HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("operation not allowed in current state")
)
