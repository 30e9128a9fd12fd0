// Package types defines the schema type model produced by the version
// readers: named element, composite, segment, loop, and structure nodes.
package types

// Kind identifies the kind of a schema type.
type Kind uint8

const (
	KindElement Kind = iota
	KindComposite
	KindSegment
	KindLoop
	KindInterchange
	KindTransaction
	KindImplementation
)

// String returns the lowercase kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindComposite:
		return "composite"
	case KindSegment:
		return "segment"
	case KindLoop:
		return "loop"
	case KindInterchange:
		return "interchange"
	case KindTransaction:
		return "transaction"
	case KindImplementation:
		return "implementation"
	default:
		return "unknown"
	}
}

// Type is a named node in a schema's type registry.
type Type interface {
	Name() string
	Kind() Kind
}

// Element is a simple data element type.
type Element struct {
	name  string
	title string
}

// NewElement builds an element type.
func NewElement(name, title string) *Element {
	return &Element{name: name, title: title}
}

func (e *Element) Name() string { return e.name }

func (e *Element) Kind() Kind { return KindElement }

// Title returns the optional human-readable title.
func (e *Element) Title() string { return e.title }

// Structure is a composite, segment, loop, or envelope-level type.
type Structure struct {
	name  string
	kind  Kind
	title string
}

// NewStructure builds a structure type of the given kind.
func NewStructure(name string, kind Kind, title string) *Structure {
	return &Structure{name: name, kind: kind, title: title}
}

func (s *Structure) Name() string { return s.name }

func (s *Structure) Kind() Kind { return s.kind }

// Title returns the optional human-readable title.
func (s *Structure) Title() string { return s.title }
