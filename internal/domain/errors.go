package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate username at registration.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports bad input shape or length.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
