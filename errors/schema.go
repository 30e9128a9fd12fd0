package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a schema loading failure.
type ErrorCode string

const (
	// ErrMalformedDocument indicates a structural violation before or during
	// root element detection.
	ErrMalformedDocument ErrorCode = "schema-malformed-document"
	// ErrUnsupportedVersion indicates a well-formed schema root bound to an
	// unrecognized namespace.
	ErrUnsupportedVersion ErrorCode = "schema-unsupported-version"
	// ErrIOFailure indicates the schema stream could not be opened or read.
	ErrIOFailure ErrorCode = "schema-io-failure"
	// ErrReaderFailure indicates a failure surfaced from the delegated
	// version-specific reader.
	ErrReaderFailure ErrorCode = "schema-reader-failure"
	// ErrControlNotFound indicates no control schema is registered for the
	// requested standard and version.
	ErrControlNotFound ErrorCode = "control-schema-not-found"
	// ErrUnsupportedProperty indicates an unsupported factory property name.
	ErrUnsupportedProperty ErrorCode = "schema-unsupported-property"
)

// SchemaError describes a schema loading error with an error code and
// optional line/column context from the source document.
//
//nolint:errname // public API name uses schema domain term.
type SchemaError struct {
	Code    string
	Message string
	Line    int
	Column  int
	Err     error
}

// Error formats the error for display, including code, message, position,
// and cause when present.
func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Line > 0 && e.Column > 0 {
		b.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	}
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return b.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Location returns the source position attached to the error. ok is false
// when the failure occurred before any document position was known.
func (e *SchemaError) Location() (line, column int, ok bool) {
	if e == nil || e.Line < 1 || e.Column < 1 {
		return 0, 0, false
	}
	return e.Line, e.Column, true
}

// NewSchema builds a SchemaError with a code and message.
func NewSchema(code ErrorCode, msg string) *SchemaError {
	return &SchemaError{Code: string(code), Message: msg}
}

// NewSchemaf formats a message and builds a SchemaError.
func NewSchemaf(code ErrorCode, format string, args ...any) *SchemaError {
	return NewSchema(code, fmt.Sprintf(format, args...))
}

// At returns a copy of the error annotated with a source position.
// Non-positive positions leave the error without a location.
func (e *SchemaError) At(line, column int) *SchemaError {
	if e == nil {
		return nil
	}
	dup := *e
	if line > 0 && column > 0 {
		dup.Line = line
		dup.Column = column
	}
	return &dup
}

// Wrap returns a copy of the error carrying err as its cause.
func (e *SchemaError) Wrap(err error) *SchemaError {
	if e == nil {
		return nil
	}
	dup := *e
	dup.Err = err
	return &dup
}

// AsSchemaError extracts a SchemaError from an error chain.
func AsSchemaError(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SchemaError
	if errors.As(err, &se) && se != nil {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err carries a SchemaError with the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsSchemaError(err)
	return ok && se.Code == string(code)
}
