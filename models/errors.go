package models

import "fmt"

// MissingFieldError reports a required payload key that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

// InvalidValueError reports a field whose value is outside its vocabulary
// or has the wrong shape. Reason, when set, carries a full human message.
type InvalidValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Invalid data: %s", e.Reason)
	}
	return fmt.Sprintf("Invalid data: field %q has invalid value %q", e.Field, e.Value)
}

// NotFoundError reports a lookup on an id that has no record.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Recommendation with id '%d' was not found", e.ID)
}

// ConflictError reports an action whose precondition failed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DataValidationError wraps a store-layer failure that was rolled back.
type DataValidationError struct {
	Err error
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("Data validation error: %v", e.Err)
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}
