package reader

import (
	schemaerrors "github.com/edistack/edischema/errors"
	"github.com/edistack/edischema/internal/schema"
)

// Assemble drives the reader to completion and constructs the immutable
// schema from the three identifying names plus the type registry. On any
// mid-read failure no partial schema is observable: the reader's error is
// rewrapped with its message and position preserved.
func Assemble(sr SchemaReader) (*schema.Schema, error) {
	registry, err := sr.ReadTypes()
	if err != nil {
		if se, ok := schemaerrors.AsSchemaError(err); ok {
			if line, column, ok := se.Location(); ok {
				return nil, schemaerrors.NewSchema(schemaerrors.ErrReaderFailure, se.Message).
					Wrap(err).
					At(line, column)
			}
			return nil, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument, se.Message).Wrap(err)
		}
		return nil, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument, err.Error()).Wrap(err)
	}

	return schema.New(sr.InterchangeName(), sr.TransactionName(), sr.ImplementationName(), registry), nil
}
