// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrEmptyPrompt is returned when a prompt is empty or only whitespace.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyEnhancement is returned when an enhancement has no rewritten text.
	ErrEmptyEnhancement = errors.New("enhanced prompt cannot be empty")

	// ErrEmptyProvider is returned when a result does not name its provider.
	ErrEmptyProvider = errors.New("provider name cannot be empty")

	// ErrInvalidImage is returned when an image payload is missing or malformed.
	ErrInvalidImage = errors.New("invalid image payload")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
