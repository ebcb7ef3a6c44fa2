package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("access denied: no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidID          = errors.New("invalid id")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrOutOfStock         = errors.New("movie out of stock")
)

// ValidationError reports the first rule an inbound payload violated, or a
// referenced record that could not be resolved. Message is shown to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the resource a lookup by id failed for. It matches
// ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the %s with the given ID was not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound returns a NotFoundError for resource.
func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
