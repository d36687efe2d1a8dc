package trivia

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the transport layer.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
	ErrBadRequest    = errors.New("bad request")
)

// FieldError describes a missing or malformed request field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match FieldError against ErrBadRequest.
func (e *FieldError) Unwrap() error {
	return ErrBadRequest
}

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
