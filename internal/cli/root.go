package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	Verbose bool
}

func addRootFlags(cmd *cobra.Command, opts *RootOptions) {
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
}

// NewRootCommand groups the datagen and probe commands under one binary.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Procurement pipeline fixtures",
		Long:  "Generate synthetic point-of-sale orders and warehouse stock snapshots, and probe the catalog store.",
	}
	cmd.AddCommand(NewDatagenCommand())
	cmd.AddCommand(NewProbeCommand())
	return cmd
}
