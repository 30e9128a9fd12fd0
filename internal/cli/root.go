// Package cli implements the edischema command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the edischema command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "edischema",
		Short: "Inspect EDI schema definition documents",
		Long: `edischema loads EDI schema definition documents (v2, v3, or v4 of the
schema definition language) and prints the assembled type registry. It can
also resolve the pre-built control schemas shipped for well-known EDI
standards.`,
		SilenceUsage: true,
	}

	root.AddCommand(newDescribeCmd())
	root.AddCommand(newControlCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
