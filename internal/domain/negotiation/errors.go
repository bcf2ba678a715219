package negotiation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the only failure the playbook generator surfaces.
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes one rejected request field. It unwraps to
// ErrInvalidInput.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
