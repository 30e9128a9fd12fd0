package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestSchemaErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *SchemaError
		want string
	}{
		{
			name: "code and message",
			err:  NewSchema(ErrMalformedDocument, "unexpected XML element [config]"),
			want: "[schema-malformed-document] unexpected XML element [config]",
		},
		{
			name: "with position",
			err:  NewSchema(ErrUnsupportedVersion, "unexpected XML element [{http://example.com/unknown}schema]").At(3, 12),
			want: "[schema-unsupported-version] unexpected XML element [{http://example.com/unknown}schema] at line 3, column 12",
		},
		{
			name: "with cause",
			err:  NewSchema(ErrIOFailure, "unable to read schema stream").Wrap(io.ErrUnexpectedEOF),
			want: "[schema-io-failure] unable to read schema stream: unexpected EOF",
		},
		{
			name: "nil receiver",
			err:  nil,
			want: "schema error <nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaErrorLocation(t *testing.T) {
	err := NewSchema(ErrMalformedDocument, "boom").At(7, 2)
	line, column, ok := err.Location()
	if !ok || line != 7 || column != 2 {
		t.Fatalf("Location() = (%d, %d, %v), want (7, 2, true)", line, column, ok)
	}

	if _, _, ok := NewSchema(ErrIOFailure, "no position").Location(); ok {
		t.Fatal("Location() ok = true for error without position")
	}
}

func TestSchemaErrorAtIgnoresInvalidPositions(t *testing.T) {
	err := NewSchema(ErrMalformedDocument, "boom").At(0, 5)
	if _, _, ok := err.Location(); ok {
		t.Fatal("At(0, 5) attached a location, want none")
	}
}

func TestAsSchemaError(t *testing.T) {
	base := NewSchema(ErrReaderFailure, "duplicate type name GS")
	wrapped := fmt.Errorf("load schema sample.xml: %w", base)

	se, ok := AsSchemaError(wrapped)
	if !ok {
		t.Fatalf("AsSchemaError() ok = false, want true")
	}
	if se.Code != string(ErrReaderFailure) {
		t.Fatalf("Code = %q, want %q", se.Code, ErrReaderFailure)
	}

	if _, ok := AsSchemaError(errors.New("plain")); ok {
		t.Fatal("AsSchemaError() matched a plain error")
	}
	if _, ok := AsSchemaError(nil); ok {
		t.Fatal("AsSchemaError(nil) ok = true")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("context: %w", NewSchema(ErrUnsupportedProperty, "unsupported property: X"))
	if !IsCode(err, ErrUnsupportedProperty) {
		t.Fatal("IsCode() = false, want true")
	}
	if IsCode(err, ErrIOFailure) {
		t.Fatal("IsCode() matched the wrong code")
	}
}

func TestSchemaErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewSchema(ErrReaderFailure, "reader failed").Wrap(cause)
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is() = false, want unwrap to reach cause")
	}
}
