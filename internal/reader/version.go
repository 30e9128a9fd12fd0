// Package reader implements the schema acquisition pipeline: it inspects
// the root element of a schema definition document, selects the reader for
// the declared grammar version, and assembles the immutable schema value.
package reader

// Version identifies a schema definition language version. The set is
// closed: the grammars are incompatible and hand-written, so adding a
// version is a code change, not a registration.
type Version uint8

const (
	VersionUnknown Version = iota
	Version2
	Version3
	Version4
)

// Namespace URIs identifying each schema definition language version.
const (
	NamespaceV2 = "http://xlate.io/EDISchema/v2"
	NamespaceV3 = "http://xlate.io/EDISchema/v3"
	NamespaceV4 = "http://xlate.io/EDISchema/v4"
)

var versionsByNamespace = map[string]Version{
	NamespaceV2: Version2,
	NamespaceV3: Version3,
	NamespaceV4: Version4,
}

// VersionForNamespace maps a namespace URI to its schema version.
func VersionForNamespace(namespace string) (Version, bool) {
	v, ok := versionsByNamespace[namespace]
	return v, ok
}

// String returns the short version label used in diagnostics.
func (v Version) String() string {
	switch v {
	case Version2:
		return "v2"
	case Version3:
		return "v3"
	case Version4:
		return "v4"
	default:
		return "unknown"
	}
}
