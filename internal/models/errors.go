package models

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned when no user matches a login attempt
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports malformed or missing client input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced resource does not exist
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError reports that a resource already exists
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// RemoteError reports that the remote record store was unreachable
// or answered with a non-2xx status
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote store returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// MappingError reports a CSV row that could not be turned into a lead.
// It is counted by the import pipeline and never returned to clients.
type MappingError struct {
	Line  int
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("line %d: missing column %q", e.Line, e.Field)
}
