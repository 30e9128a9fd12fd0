package edischema_test

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/edistack/edischema"
	schemaerrors "github.com/edistack/edischema/errors"
)

const v4Namespace = "http://xlate.io/EDISchema/v4"

const sampleV4Schema = `<?xml version="1.0"?>
<schema xmlns="` + v4Namespace + `">
  <interchange header="ISA" trailer="IEA">
    <sequence/>
  </interchange>
  <segmentType name="ISA"/>
  <segmentType name="GS"/>
</schema>`

func TestCreateSchemaFromStream(t *testing.T) {
	factory := edischema.NewSchemaFactory()

	sch, err := factory.CreateSchema(strings.NewReader(sampleV4Schema))
	if err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	if sch.InterchangeName() == "" {
		t.Fatal("InterchangeName() = empty, want interchange declared")
	}
	if sch.TransactionName() != "" {
		t.Fatalf("TransactionName() = %q, want empty", sch.TransactionName())
	}

	want := []string{"GS", "INTERCHANGE", "ISA"}
	if got := sch.TypeNames(); !slices.Equal(got, want) {
		t.Fatalf("TypeNames() = %v, want %v", got, want)
	}
}

func TestCreateSchemaDeclaredTypesOnly(t *testing.T) {
	doc := `<schema xmlns="` + v4Namespace + `">
  <segmentType name="ISA"/>
  <segmentType name="GS"/>
</schema>`

	sch, err := edischema.NewSchemaFactory().CreateSchema(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	want := []string{"GS", "ISA"}
	if got := sch.TypeNames(); !slices.Equal(got, want) {
		t.Fatalf("TypeNames() = %v, want %v", got, want)
	}
}

func TestCreateSchemaWrongRootElement(t *testing.T) {
	_, err := edischema.NewSchemaFactory().CreateSchema(strings.NewReader(`<config></config>`))
	if err == nil {
		t.Fatal("CreateSchema() error = nil, want malformed document error")
	}

	se, ok := schemaerrors.AsSchemaError(err)
	if !ok {
		t.Fatalf("CreateSchema() error = %v, want SchemaError", err)
	}
	if se.Code != string(schemaerrors.ErrMalformedDocument) {
		t.Fatalf("Code = %q, want %q", se.Code, schemaerrors.ErrMalformedDocument)
	}
	if !strings.Contains(se.Message, "config") {
		t.Fatalf("Message = %q, want it to name element config", se.Message)
	}
	if _, _, ok := se.Location(); !ok {
		t.Fatal("Location() ok = false, want position of the offending element")
	}
}

func TestCreateSchemaUnknownNamespace(t *testing.T) {
	const namespace = "http://example.com/unknown"
	doc := `<schema xmlns="` + namespace + `"></schema>`

	_, err := edischema.NewSchemaFactory().CreateSchema(strings.NewReader(doc))
	if !schemaerrors.IsCode(err, schemaerrors.ErrUnsupportedVersion) {
		t.Fatalf("CreateSchema() error = %v, want code %s", err, schemaerrors.ErrUnsupportedVersion)
	}
	if !strings.Contains(err.Error(), namespace) {
		t.Fatalf("CreateSchema() error = %v, want it to name %q", err, namespace)
	}
}

func TestCreateSchemaNilStream(t *testing.T) {
	_, err := edischema.NewSchemaFactory().CreateSchema(nil)
	if !schemaerrors.IsCode(err, schemaerrors.ErrIOFailure) {
		t.Fatalf("CreateSchema(nil) error = %v, want code %s", err, schemaerrors.ErrIOFailure)
	}
	se, _ := schemaerrors.AsSchemaError(err)
	if _, _, ok := se.Location(); ok {
		t.Fatal("Location() ok = true, want no position for an I/O failure")
	}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	factory := edischema.NewSchemaFactory()

	first, err := factory.CreateSchema(strings.NewReader(sampleV4Schema))
	if err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	second, err := factory.CreateSchema(strings.NewReader(sampleV4Schema))
	if err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	if first.InterchangeName() != second.InterchangeName() {
		t.Fatal("interchange names differ across identical loads")
	}
	if !slices.Equal(first.TypeNames(), second.TypeNames()) {
		t.Fatalf("type names differ: %v vs %v", first.TypeNames(), second.TypeNames())
	}
}

func TestCreateSchemaConcurrent(t *testing.T) {
	factory := edischema.NewSchemaFactory()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := factory.CreateSchema(strings.NewReader(sampleV4Schema))
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("CreateSchema() error = %v", err)
		}
	}
}

// closeTrackingFS counts Close calls on every opened file.
type closeTrackingFS struct {
	fsys   fs.FS
	closes map[string]*int
}

type closeTrackingFile struct {
	fs.File
	count *int
}

func (f *closeTrackingFile) Close() error {
	*f.count++
	return f.File.Close()
}

func (c *closeTrackingFS) Open(name string) (fs.File, error) {
	file, err := c.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	count, ok := c.closes[name]
	if !ok {
		count = new(int)
		c.closes[name] = count
	}
	return &closeTrackingFile{File: file, count: count}, nil
}

func TestCreateSchemaFSClosesStreamOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid document", doc: sampleV4Schema},
		{name: "malformed document", doc: `<config/>`, wantErr: true},
		{name: "reader failure", doc: `<schema xmlns="` + v4Namespace + `"><segmentType/></schema>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracked := &closeTrackingFS{
				fsys:   fstest.MapFS{"schema.xml": &fstest.MapFile{Data: []byte(tt.doc)}},
				closes: make(map[string]*int),
			}

			_, err := edischema.NewSchemaFactory().CreateSchemaFS(tracked, "schema.xml")
			if tt.wantErr && err == nil {
				t.Fatal("CreateSchemaFS() error = nil, want failure")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CreateSchemaFS() error = %v", err)
			}
			if got := *tracked.closes["schema.xml"]; got != 1 {
				t.Fatalf("stream closed %d times, want exactly 1", got)
			}
		})
	}
}

func TestCreateSchemaFSOpenFailure(t *testing.T) {
	fsys := fstest.MapFS{}

	_, err := edischema.NewSchemaFactory().CreateSchemaFS(fsys, "missing.xml")
	if !schemaerrors.IsCode(err, schemaerrors.ErrIOFailure) {
		t.Fatalf("CreateSchemaFS() error = %v, want code %s", err, schemaerrors.ErrIOFailure)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("errors.Is(err, fs.ErrNotExist) = false, want open cause preserved")
	}
}

func TestCreateSchemaFileMissing(t *testing.T) {
	_, err := edischema.NewSchemaFactory().CreateSchemaFile("testdata/does-not-exist.xml")
	if !schemaerrors.IsCode(err, schemaerrors.ErrIOFailure) {
		t.Fatalf("CreateSchemaFile() error = %v, want code %s", err, schemaerrors.ErrIOFailure)
	}
}

func TestGetControlSchema(t *testing.T) {
	factory := edischema.NewSchemaFactory()

	sch, err := factory.GetControlSchema("X12", []string{"00501"})
	if err != nil {
		t.Fatalf("GetControlSchema() error = %v", err)
	}
	if _, ok := sch.Type("ISA"); !ok {
		t.Fatal("Type(ISA) missing from X12 control schema")
	}

	_, err = factory.GetControlSchema("TRADACOMS", []string{"9"})
	if !schemaerrors.IsCode(err, schemaerrors.ErrControlNotFound) {
		t.Fatalf("GetControlSchema() error = %v, want code %s", err, schemaerrors.ErrControlNotFound)
	}
}

func TestPropertySurface(t *testing.T) {
	factory, err := edischema.NewSchemaFactoryWithOptions(
		edischema.NewFactoryOptions().WithSupportedProperties("trim.values"))
	if err != nil {
		t.Fatalf("NewSchemaFactoryWithOptions() error = %v", err)
	}

	if !factory.IsPropertySupported("trim.values") {
		t.Fatal("IsPropertySupported(trim.values) = false, want true")
	}
	if factory.IsPropertySupported("other") {
		t.Fatal("IsPropertySupported(other) = true, want false")
	}

	if err := factory.SetProperty("trim.values", true); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	value, err := factory.GetProperty("trim.values")
	if err != nil {
		t.Fatalf("GetProperty() error = %v", err)
	}
	if value != true {
		t.Fatalf("GetProperty() = %v, want true", value)
	}

	if err := factory.SetProperty("other", 1); !schemaerrors.IsCode(err, schemaerrors.ErrUnsupportedProperty) {
		t.Fatalf("SetProperty(other) error = %v, want code %s", err, schemaerrors.ErrUnsupportedProperty)
	}
	if _, err := factory.GetProperty("other"); !schemaerrors.IsCode(err, schemaerrors.ErrUnsupportedProperty) {
		t.Fatalf("GetProperty(other) error = %v, want code %s", err, schemaerrors.ErrUnsupportedProperty)
	}
}

func TestSetPropertyLegacyBehavior(t *testing.T) {
	factory, err := edischema.NewSchemaFactoryWithOptions(
		edischema.NewFactoryOptions().
			WithSupportedProperties("trim.values").
			WithLegacyPropertySet(true))
	if err != nil {
		t.Fatalf("NewSchemaFactoryWithOptions() error = %v", err)
	}

	// the legacy behavior stores the value and still reports failure
	if err := factory.SetProperty("trim.values", "yes"); err == nil {
		t.Fatal("SetProperty() error = nil, want legacy failure")
	}
	value, err := factory.GetProperty("trim.values")
	if err != nil {
		t.Fatalf("GetProperty() error = %v", err)
	}
	if value != "yes" {
		t.Fatalf("GetProperty() = %v, want stored value despite the reported failure", value)
	}
}

func TestFactoryOptionsRejectNegativeMaxTypes(t *testing.T) {
	_, err := edischema.NewSchemaFactoryWithOptions(edischema.NewFactoryOptions().WithMaxTypes(-1))
	if err == nil {
		t.Fatal("NewSchemaFactoryWithOptions() error = nil, want invalid limit error")
	}
}

func TestFactoryMaxTypesEnforced(t *testing.T) {
	factory, err := edischema.NewSchemaFactoryWithOptions(edischema.NewFactoryOptions().WithMaxTypes(1))
	if err != nil {
		t.Fatalf("NewSchemaFactoryWithOptions() error = %v", err)
	}

	doc := `<schema xmlns="` + v4Namespace + `"><segmentType name="ISA"/><segmentType name="GS"/></schema>`
	_, err = factory.CreateSchema(strings.NewReader(doc))
	if err == nil {
		t.Fatal("CreateSchema() error = nil, want max types error")
	}
}
