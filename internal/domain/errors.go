package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed input (bad vote type, short query, missing field).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource (unknown vote target, comment).
	ErrNotFound = errors.New("not found")
	// ErrIntegrity signals a violated ledger invariant or a lost update.
	ErrIntegrity = errors.New("integrity violation")
)

// ValidationError carries the offending field next to ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IntegrityError wraps ErrIntegrity with the target whose tally broke.
type IntegrityError struct {
	TargetID string
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: target %s: %s", ErrIntegrity.Error(), e.TargetID, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }
