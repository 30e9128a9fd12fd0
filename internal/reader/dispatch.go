package reader

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	schemaerrors "github.com/edistack/edischema/errors"
)

const rootElementName = "schema"

// Dispatch advances dec to the document's root element, determines the
// schema definition version from the root namespace, and returns the
// matching version-specific reader bound to the still-open decoder. The
// reader resumes parsing immediately inside the root element.
func Dispatch(dec *xml.Decoder, cfg Config) (SchemaReader, error) {
	root, err := advanceToRoot(dec)
	if err != nil {
		return nil, err
	}

	if root.Name.Local != rootElementName || root.Name.Space == "" {
		return nil, unexpectedElement(dec, root.Name)
	}

	version, ok := VersionForNamespace(root.Name.Space)
	if !ok {
		line, column := inputPos(dec)
		return nil, schemaerrors.NewSchemaf(schemaerrors.ErrUnsupportedVersion,
			"unsupported schema version namespace [%s]", root.Name.Space).At(line, column)
	}

	switch version {
	case Version2:
		return newV2Reader(dec, root, cfg), nil
	case Version3:
		return newV3Reader(dec, root, cfg), nil
	default:
		return newV4Reader(dec, root, cfg), nil
	}
}

// advanceToRoot consumes prolog tokens (whitespace, comments, processing
// instructions, directives) up to the first start element.
func advanceToRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
				"unexpected end of document before root element")
		}
		if err != nil {
			line, column := inputPos(dec)
			return xml.StartElement{}, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
				"malformed schema document").Wrap(err).At(line, column)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				line, column := inputPos(dec)
				return xml.StartElement{}, schemaerrors.NewSchema(schemaerrors.ErrMalformedDocument,
					"unexpected XML event [character data] before root element").At(line, column)
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			// prolog noise
		}
	}
}

func unexpectedElement(dec *xml.Decoder, name xml.Name) *schemaerrors.SchemaError {
	line, column := inputPos(dec)
	return schemaerrors.NewSchemaf(schemaerrors.ErrMalformedDocument,
		"unexpected XML element [%s]", qualifiedName(name)).At(line, column)
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

func inputPos(dec *xml.Decoder) (line, column int) {
	return dec.InputPos()
}
