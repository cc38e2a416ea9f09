// Package apperrors defines the error taxonomy shared across services,
// repositories, and handlers. Handlers map these to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("not authorized")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrValidation        = errors.New("validation failed")
)

// ValidationError carries a field-level validation message. It unwraps to
// ErrValidation so callers can match the whole class with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidTransitionError reports an illegal lifecycle move with a
// caller-facing message. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports an authorization denial with a caller-facing
// message. It unwraps to ErrForbidden.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
