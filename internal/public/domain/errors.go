package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a restaurant or review does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError describes a malformed consumer query or review.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
