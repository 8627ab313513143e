package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/malteki/cargo-cleaner/internal/buildinfo"
)

// NewCmd creates `cargo-cleaner version`.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.OutOrStdout(), short, asJSON)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}

func write(w io.Writer, short, asJSON bool) error {
	if short {
		_, err := fmt.Fprintln(w, buildinfo.Get().Version)
		return err
	}
	if !asJSON {
		_, err := fmt.Fprintf(w, "cargo-cleaner %s\n", buildinfo.Summary())
		return err
	}
	info := buildinfo.Get()
	out := map[string]any{
		"version": info.Version,
		"commit":  info.Commit,
		"date":    info.Date,
		"dirty":   info.Dirty,
		"go":      runtime.Version(),
		"go_os":   runtime.GOOS,
		"go_arch": runtime.GOARCH,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
