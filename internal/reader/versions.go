package reader

import (
	"encoding/xml"

	"github.com/edistack/edischema/internal/types"
)

// Declaration tags accepted directly inside the schema root, per grammar
// version. v3 adds loops, v4 adds the implementation block (handled
// separately from this table).
var (
	v2Declarations = map[string]types.Kind{
		"elementType":   types.KindElement,
		"compositeType": types.KindComposite,
		"segmentType":   types.KindSegment,
	}

	v3Declarations = map[string]types.Kind{
		"elementType":   types.KindElement,
		"compositeType": types.KindComposite,
		"segmentType":   types.KindSegment,
		"loopType":      types.KindLoop,
	}

	v4Declarations = v3Declarations
)

func newV2Reader(dec *xml.Decoder, root xml.StartElement, cfg Config) SchemaReader {
	return newGrammarReader(dec, root, Version2, cfg, v2Declarations, false)
}

func newV3Reader(dec *xml.Decoder, root xml.StartElement, cfg Config) SchemaReader {
	return newGrammarReader(dec, root, Version3, cfg, v3Declarations, false)
}

func newV4Reader(dec *xml.Decoder, root xml.StartElement, cfg Config) SchemaReader {
	return newGrammarReader(dec, root, Version4, cfg, v4Declarations, true)
}
