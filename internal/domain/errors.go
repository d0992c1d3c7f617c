// Package domain defines core types, interfaces, and errors for external
// table synchronization.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnsupportedFormatError indicates a file format outside the supported set.
// It is raised before any statement text is built.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q", e.Format)
}

// SchemaUnavailableError indicates that no column definitions could be
// resolved for a stream, from either a dataset or the schema registry.
type SchemaUnavailableError struct {
	Stream string
	Err    error
}

func (e *SchemaUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema unavailable for stream %q: %v", e.Stream, e.Err)
	}
	return fmt.Sprintf("schema unavailable for stream %q", e.Stream)
}

func (e *SchemaUnavailableError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnsupportedFormat creates an UnsupportedFormatError for the given format id.
func ErrUnsupportedFormat(format string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format}
}

// ErrSchemaUnavailable creates a SchemaUnavailableError wrapping the cause.
func ErrSchemaUnavailable(stream string, err error) *SchemaUnavailableError {
	return &SchemaUnavailableError{Stream: stream, Err: err}
}
