// Package apperr defines the failure classes every handler boundary maps to.
// These are business-level failures, not HTTP errors; the HTTP layer decides
// how each class is surfaced.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthenticated indicates the request carries no valid principal.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers both a missing record and a record owned by a
	// different principal. The two cases are deliberately indistinguishable
	// so ownership cannot be probed through error responses.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates field-level constraint violations.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates the underlying store failed.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError carries per-field messages so the presentation layer can
// render them next to the offending inputs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NewValidationErrors wraps a set of per-field messages.
func NewValidationErrors(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// FieldErrors extracts the per-field messages from a validation error,
// or nil if err is not one.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Unavailable wraps a store failure so nothing unclassified crosses the
// handler boundary.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthenticated checks if an error is an unauthenticated error.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsUnavailable checks if an error is a store failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
