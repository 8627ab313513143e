package root

import (
	"github.com/spf13/cobra"

	"github.com/malteki/cargo-cleaner/cmd/cargo-cleaner/clean"
	"github.com/malteki/cargo-cleaner/cmd/cargo-cleaner/diagnose"
	"github.com/malteki/cargo-cleaner/cmd/cargo-cleaner/version"
)

// NewRootCmd creates the root command for cargo-cleaner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cargo-cleaner",
		Short: "Run cargo clean on every Cargo project below a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(version.NewCmd())
	cmd.AddCommand(clean.NewCmd())
	cmd.AddCommand(diagnose.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
