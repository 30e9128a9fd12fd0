package reader

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	schemaerrors "github.com/edistack/edischema/errors"
	"github.com/edistack/edischema/internal/types"
)

// grammarReader scans the declarations directly inside the schema root
// element. Each version supplies the set of declaration tags it accepts;
// nested structure below a declaration is skipped, so a full read stays
// linear in document size.
type grammarReader struct {
	dec     *xml.Decoder
	root    xml.StartElement
	version Version
	decls   map[string]types.Kind

	supportsImplementation bool
	maxTypes               int

	interchangeName    string
	transactionName    string
	implementationName string
}

func newGrammarReader(dec *xml.Decoder, root xml.StartElement, version Version, cfg Config, decls map[string]types.Kind, supportsImplementation bool) *grammarReader {
	return &grammarReader{
		dec:                    dec,
		root:                   root,
		version:                version,
		decls:                  decls,
		supportsImplementation: supportsImplementation,
		maxTypes:               cfg.maxTypes(),
	}
}

func (g *grammarReader) Version() Version { return g.version }

func (g *grammarReader) InterchangeName() string { return g.interchangeName }

func (g *grammarReader) TransactionName() string { return g.transactionName }

func (g *grammarReader) ImplementationName() string { return g.implementationName }

// ReadTypes consumes the document through the end of the root element and
// returns the declared type registry keyed by name.
func (g *grammarReader) ReadTypes() (map[string]types.Type, error) {
	registry := make(map[string]types.Type)

	for {
		tok, err := g.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
				"unexpected end of document inside schema element")
		}
		if err != nil {
			line, column := inputPos(g.dec)
			return nil, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
				"malformed schema document").Wrap(err).At(line, column)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := g.readDeclaration(t, registry); err != nil {
				return nil, err
			}
		case xml.EndElement:
			// end of the schema root
			return registry, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				line, column := inputPos(g.dec)
				return nil, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
					"unexpected character data inside schema element").At(line, column)
			}
		case xml.Comment, xml.ProcInst:
			// ignored between declarations
		}
	}
}

func (g *grammarReader) readDeclaration(start xml.StartElement, registry map[string]types.Type) error {
	if start.Name.Space != g.root.Name.Space {
		return unexpectedElement(g.dec, start.Name)
	}

	switch start.Name.Local {
	case "interchange":
		if err := g.declareEnvelope(registry, start, &g.interchangeName, InterchangeTypeName, types.KindInterchange); err != nil {
			return err
		}
	case "transaction":
		if err := g.declareEnvelope(registry, start, &g.transactionName, TransactionTypeName, types.KindTransaction); err != nil {
			return err
		}
	case "implementation":
		if !g.supportsImplementation {
			return unexpectedElement(g.dec, start.Name)
		}
		if err := g.declareEnvelope(registry, start, &g.implementationName, ImplementationTypeName, types.KindImplementation); err != nil {
			return err
		}
	default:
		kind, ok := g.decls[start.Name.Local]
		if !ok {
			return unexpectedElement(g.dec, start.Name)
		}
		if err := g.declareType(registry, start, kind); err != nil {
			return err
		}
	}

	return g.skipSubtree()
}

func (g *grammarReader) declareEnvelope(registry map[string]types.Type, start xml.StartElement, slot *string, reserved string, kind types.Kind) error {
	if *slot != "" {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchemaf(schemaerrors.ErrMalformedDocument,
			"duplicate %s declaration", start.Name.Local).At(line, column)
	}
	if kind != types.KindImplementation && g.otherEnvelopeDeclared(kind) {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
			"schema may declare an interchange or a transaction, not both").At(line, column)
	}
	if err := g.register(registry, reserved, types.NewStructure(reserved, kind, attrValue(start, "title"))); err != nil {
		return err
	}
	*slot = reserved
	return nil
}

func (g *grammarReader) otherEnvelopeDeclared(kind types.Kind) bool {
	if kind == types.KindInterchange {
		return g.transactionName != ""
	}
	return g.interchangeName != ""
}

func (g *grammarReader) declareType(registry map[string]types.Type, start xml.StartElement, kind types.Kind) error {
	name := attrValue(start, "name")
	if name == "" {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchemaf(schemaerrors.ErrMalformedDocument,
			"element %s is missing the required name attribute", start.Name.Local).At(line, column)
	}

	title := attrValue(start, "title")
	var typ types.Type
	if kind == types.KindElement {
		typ = types.NewElement(name, title)
	} else {
		typ = types.NewStructure(name, kind, title)
	}
	return g.register(registry, name, typ)
}

func (g *grammarReader) register(registry map[string]types.Type, name string, typ types.Type) error {
	if _, exists := registry[name]; exists {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchemaf(schemaerrors.ErrMalformedDocument,
			"duplicate type name %s", name).At(line, column)
	}
	if len(registry) >= g.maxTypes {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchemaf(schemaerrors.ErrMalformedDocument,
			"schema declares more than %d types", g.maxTypes).At(line, column)
	}
	registry[name] = typ
	return nil
}

func (g *grammarReader) skipSubtree() error {
	if err := g.dec.Skip(); err != nil {
		line, column := inputPos(g.dec)
		return schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
			"malformed schema document").Wrap(err).At(line, column)
	}
	return nil
}

func attrValue(start xml.StartElement, local string) string {
	for _, attr := range start.Attr {
		if attr.Name.Local == local && attr.Name.Space == "" {
			return strings.TrimSpace(attr.Value)
		}
	}
	return ""
}
