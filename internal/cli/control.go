package cli

import (
	"github.com/spf13/cobra"

	"github.com/edistack/edischema"
)

func newControlCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "control <standard> <version>...",
		Short: "Resolve the pre-built control schema for a well-known standard",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := edischema.NewSchemaFactory()
			sch, err := factory.GetControlSchema(args[0], args[1:])
			if err != nil {
				return loadError(err)
			}
			return printSchema(cmd.OutOrStdout(), sch, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON")
	return cmd
}
