package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrMalformedID indicates that an identifier token is not an integer.
	// It is raised before any data store access.
	ErrMalformedID = errors.New("malformed id")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidationFailed) hold for any field violation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Violation renders the error the way it is exposed to API clients,
// e.g. "title should not be empty".
func (e *ValidationError) Violation() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// ValidationErrors collects every field violation found in one input.
type ValidationErrors []*ValidationError

// Error joins all violations into a single message.
func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v.Violations(), "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold for a violation list.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Violations returns the client-facing message of every violation, in order.
func (v ValidationErrors) Violations() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Violation())
	}
	return out
}

// Add appends a violation for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, &ValidationError{Field: field, Message: message})
}

// Err returns nil when no violation was recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
