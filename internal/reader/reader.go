package reader

import (
	"github.com/edistack/edischema/internal/types"
)

// Reserved registry names for envelope-level structures declared by a
// schema document.
const (
	InterchangeTypeName    = "INTERCHANGE"
	TransactionTypeName    = "TRANSACTION"
	ImplementationTypeName = "IMPLEMENTATION"
)

const defaultMaxTypes = 4096

// SchemaReader produces the type registry and identifying names for one
// schema definition grammar version. ReadTypes consumes the document to
// the end of the root element; the name accessors are valid afterwards.
type SchemaReader interface {
	ReadTypes() (map[string]types.Type, error)
	InterchangeName() string
	TransactionName() string
	ImplementationName() string
	Version() Version
}

// Config bounds schema document processing.
type Config struct {
	// MaxTypes caps the number of type declarations accepted from a single
	// document. Zero selects the default.
	MaxTypes int
}

func (c Config) maxTypes() int {
	if c.MaxTypes != 0 {
		return c.MaxTypes
	}
	return defaultMaxTypes
}
