package repository

import "fmt"

// ErrorCode classifies a failure reported by the data store.
// The set is closed: adapters only ever emit the codes declared here.
type ErrorCode string

const (
	// CodeUniqueViolation: a unique constraint rejected the write (duplicate key).
	CodeUniqueViolation ErrorCode = "unique_violation"
	// CodeForeignKeyViolation: a referenced row does not exist.
	CodeForeignKeyViolation ErrorCode = "foreign_key_violation"
	// CodeNotNullViolation: a required column received NULL.
	CodeNotNullViolation ErrorCode = "not_null_violation"
	// CodeValueTooLong: a value exceeds the column's declared length.
	CodeValueTooLong ErrorCode = "value_too_long"
	// CodeValueOutOfRange: a numeric value does not fit the column type.
	CodeValueOutOfRange ErrorCode = "value_out_of_range"
)

// StoreError is a known request error: the store understood the request and
// rejected it for a reason identified by Code. Failures the adapter cannot
// classify are returned as plain wrapped errors instead.
type StoreError struct {
	Code ErrorCode
	// Message is the store's human-readable text. It may contain newlines.
	Message string
	// Constraint names the violated constraint when the store reports one.
	Constraint string
	Err        error
}

// Error returns the code and store message.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}
