package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced submission or restaurant does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when the lifecycle does not allow the requested action.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrPaymentRequired is returned when approval is attempted before payment is recorded.
	ErrPaymentRequired = errors.New("payment has not been received for this submission")
	// ErrDuplicatePayment is returned when a different payment reference is already recorded.
	ErrDuplicatePayment = errors.New("submission already paid with a different payment reference")
	// ErrStateConflict is returned by repositories when a guarded update sees an unexpected state.
	ErrStateConflict = errors.New("submission state changed concurrently")
	// ErrAlreadyPublished is returned by restaurant repositories when the submission already produced a restaurant.
	ErrAlreadyPublished = errors.New("restaurant already published for submission")
)

// ValidationError describes malformed listing content.
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

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
