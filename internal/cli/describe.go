package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/edistack/edischema"
	schemaerrors "github.com/edistack/edischema/errors"
)

func newDescribeCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "describe <schema.xml>",
		Short: "Load a schema definition document and print its type registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			opts, err := configuredFactoryOptions(filepath.Dir(path))
			if err != nil {
				return fmt.Errorf("read project config: %w", err)
			}
			factory, err := edischema.NewSchemaFactoryWithOptions(
				edischema.NewFactoryOptions().
					WithMaxTypes(opts.maxTypes).
					WithSupportedProperties(opts.supportedProperties...))
			if err != nil {
				return err
			}

			sch, err := factory.CreateSchemaFile(path)
			if err != nil {
				return loadError(err)
			}
			return printSchema(cmd.OutOrStdout(), sch, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON")
	return cmd
}

// loadError renders a schema load failure with its source position when
// one is attached.
func loadError(err error) error {
	se, ok := schemaerrors.AsSchemaError(err)
	if !ok {
		return err
	}
	if line, column, ok := se.Location(); ok {
		return fmt.Errorf("%s (line %d, column %d)", se.Message, line, column)
	}
	return fmt.Errorf("%s", se.Message)
}

type schemaJSON struct {
	InterchangeName    string     `json:"interchangeName,omitempty"`
	TransactionName    string     `json:"transactionName,omitempty"`
	ImplementationName string     `json:"implementationName,omitempty"`
	Types              []typeJSON `json:"types"`
}

type typeJSON struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func printSchema(w io.Writer, sch *edischema.Schema, jsonOut bool) error {
	if jsonOut {
		return printSchemaJSON(w, sch)
	}
	return printSchemaText(w, sch)
}

func printSchemaJSON(w io.Writer, sch *edischema.Schema) error {
	out := schemaJSON{
		InterchangeName:    sch.InterchangeName(),
		TransactionName:    sch.TransactionName(),
		ImplementationName: sch.ImplementationName(),
		Types:              make([]typeJSON, 0, sch.TypeCount()),
	}
	for _, name := range sch.TypeNames() {
		typ, _ := sch.Type(name)
		out.Types = append(out.Types, typeJSON{Name: name, Kind: typ.Kind().String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSchemaText(w io.Writer, sch *edischema.Schema) error {
	label := color.New(color.Bold)

	if name := sch.InterchangeName(); name != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", label.Sprint("interchange:"), name); err != nil {
			return err
		}
	}
	if name := sch.TransactionName(); name != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", label.Sprint("transaction:"), name); err != nil {
			return err
		}
	}
	if name := sch.ImplementationName(); name != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", label.Sprint("implementation:"), name); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s %d\n", label.Sprint("types:"), sch.TypeCount()); err != nil {
		return err
	}
	kindColor := color.New(color.FgCyan)
	for _, name := range sch.TypeNames() {
		typ, _ := sch.Type(name)
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", name, kindColor.Sprint(typ.Kind().String())); err != nil {
			return err
		}
	}
	return nil
}
