// Package schema defines the immutable schema value assembled from a
// version-specific reader.
package schema

import (
	"maps"
	"slices"

	"github.com/edistack/edischema/internal/types"
)

// Schema is an immutable description of an EDI document structure: a set of
// named type definitions plus identifying names. Once constructed it is
// never mutated and is safe to share across goroutines.
type Schema struct {
	interchangeName    string
	transactionName    string
	implementationName string
	types              map[string]types.Type
}

// New builds a Schema from identifying names and a type registry. The
// registry map is copied; later mutation of the argument does not affect
// the Schema. A nil registry yields an empty one.
func New(interchangeName, transactionName, implementationName string, registry map[string]types.Type) *Schema {
	copied := make(map[string]types.Type, len(registry))
	maps.Copy(copied, registry)
	return &Schema{
		interchangeName:    interchangeName,
		transactionName:    transactionName,
		implementationName: implementationName,
		types:              copied,
	}
}

// InterchangeName identifies the outer envelope type, or "" when absent.
func (s *Schema) InterchangeName() string { return s.interchangeName }

// TransactionName identifies the transaction type, or "" when absent.
func (s *Schema) TransactionName() string { return s.transactionName }

// ImplementationName identifies an implementation-constrained variant, or
// "" when absent.
func (s *Schema) ImplementationName() string { return s.implementationName }

// Type returns the named type definition.
func (s *Schema) Type(name string) (types.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// TypeCount returns the number of registered types.
func (s *Schema) TypeCount() int { return len(s.types) }

// TypeNames returns the registered type names in sorted order.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Equal reports whether two schemas declare the same names and the same
// type-name set.
func Equal(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.interchangeName != b.interchangeName ||
		a.transactionName != b.transactionName ||
		a.implementationName != b.implementationName {
		return false
	}
	if len(a.types) != len(b.types) {
		return false
	}
	for name := range a.types {
		if _, ok := b.types[name]; !ok {
			return false
		}
	}
	return true
}
