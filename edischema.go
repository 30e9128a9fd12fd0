// Package edischema loads EDI schema definition documents and produces
// immutable schema values for later message validation. The document's
// root element determines which schema definition language version is in
// use; each version has its own reader behind a single entry point.
package edischema

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	schemaerrors "github.com/edistack/edischema/errors"
	"github.com/edistack/edischema/internal/control"
	"github.com/edistack/edischema/internal/reader"
	"github.com/edistack/edischema/internal/schema"
	"github.com/edistack/edischema/internal/types"
)

// Schema is an immutable description of an EDI document structure. It is
// safe to share across goroutines without synchronization.
type Schema = schema.Schema

// Type is a named entry in a schema's type registry.
type Type = types.Type

// TypeKind identifies the kind of a schema type.
type TypeKind = types.Kind

// SchemaFactory creates Schema instances from schema definition documents
// and resolves pre-built control schemas. Concurrent CreateSchema calls
// are independent; the factory holds only the property bag as shared
// state.
type SchemaFactory struct {
	limits            schemaLimits
	legacyPropertySet bool

	mu         sync.RWMutex
	supported  map[string]struct{}
	properties map[string]any
}

// NewSchemaFactory creates a factory with default options.
func NewSchemaFactory() *SchemaFactory {
	// default options always validate
	f, _ := NewSchemaFactoryWithOptions(NewFactoryOptions())
	return f
}

// NewSchemaFactoryWithOptions creates a factory with explicit
// configuration.
func NewSchemaFactoryWithOptions(opts FactoryOptions) (*SchemaFactory, error) {
	limits, err := resolveSchemaLimits(opts.maxTypes)
	if err != nil {
		return nil, fmt.Errorf("new schema factory: %w", err)
	}

	supported := make(map[string]struct{}, len(opts.supportedProperties))
	for _, name := range opts.supportedProperties {
		supported[name] = struct{}{}
	}

	return &SchemaFactory{
		limits:            limits,
		legacyPropertySet: opts.legacyPropertySet,
		supported:         supported,
		properties:        make(map[string]any),
	}, nil
}

// CreateSchema reads a schema definition document from r and returns the
// assembled schema. The caller owns r; it is read to the end of the root
// element and never closed here.
func (f *SchemaFactory) CreateSchema(r io.Reader) (*Schema, error) {
	if r == nil {
		return nil, schemaerrors.NewSchema(schemaerrors.ErrIOFailure, "nil schema stream")
	}

	dec := xml.NewDecoder(r)
	sr, err := reader.Dispatch(dec, reader.Config{MaxTypes: f.limits.maxTypes})
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	sch, err := reader.Assemble(sr)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return sch, nil
}

// CreateSchemaFS opens location within fsys and reads it as a schema
// definition document. The opened file is closed on every exit path; a
// close failure never masks the primary result.
func (f *SchemaFactory) CreateSchemaFS(fsys fs.FS, location string) (sch *Schema, err error) {
	if fsys == nil {
		return nil, schemaerrors.NewSchema(schemaerrors.ErrIOFailure, "nil schema filesystem")
	}

	file, openErr := fsys.Open(location)
	if openErr != nil {
		return nil, schemaerrors.NewSchemaf(schemaerrors.ErrIOFailure,
			"unable to open schema %s", location).Wrap(openErr)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			sch = nil
			err = schemaerrors.NewSchemaf(schemaerrors.ErrIOFailure,
				"unable to close schema %s", location).Wrap(closeErr)
		}
	}()

	return f.CreateSchema(file)
}

// CreateSchemaFile reads a schema definition document from a file path.
func (f *SchemaFactory) CreateSchemaFile(path string) (*Schema, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return f.CreateSchemaFS(os.DirFS(dir), base)
}

// GetControlSchema returns the pre-built control schema for a well-known
// standard and version. No parsing of caller input occurs; the schemas
// ship with the library.
func (f *SchemaFactory) GetControlSchema(standard string, version []string) (*Schema, error) {
	sch, err := control.Lookup(standard, version)
	if err != nil {
		return nil, fmt.Errorf("get control schema: %w", err)
	}
	return sch, nil
}

// IsPropertySupported reports whether the named factory property is in
// the supported set.
func (f *SchemaFactory) IsPropertySupported(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.supported[name]
	return ok
}

// GetProperty returns the named property value. Requesting an
// unsupported property is an error.
func (f *SchemaFactory) GetProperty(name string) (any, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.supported[name]; !ok {
		return nil, schemaerrors.NewSchemaf(schemaerrors.ErrUnsupportedProperty,
			"unsupported property: %s", name)
	}
	return f.properties[name], nil
}

// SetProperty stores a supported property value. With the legacy
// property-set option enabled the store still happens, but the call
// reports failure afterwards, reproducing the behavior of historical
// implementations that fell through to the error path.
func (f *SchemaFactory) SetProperty(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.supported[name]; ok {
		f.properties[name] = value
		if !f.legacyPropertySet {
			return nil
		}
	}
	return schemaerrors.NewSchemaf(schemaerrors.ErrUnsupportedProperty,
		"unsupported property: %s", name)
}
