package diagnose

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/logging"
	"github.com/malteki/cargo-cleaner/internal/stage"
)

// NewCmd creates `cargo-cleaner diagnose [DIR]`. It resolves settings and
// lists the manifests a clean would run on, without running anything.
func NewCmd() *cobra.Command {
	var dump string
	cmd := &cobra.Command{
		Use:           "diagnose [DIR]",
		Short:         "Print resolved settings and the manifests clean would process",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) == 1 {
				root = args[0]
			}
			s, err := config.Resolve(config.OptionsFromFlags(cmd.Flags(), root))
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(s.LogLevel)
			if err != nil {
				return err
			}
			deps := stage.Deps{Logger: logging.New(cmd.ErrOrStderr(), level)}
			out, err := stage.Run(context.Background(), "discover", stage.Envelope{Settings: s}, deps)
			if err != nil {
				return err
			}
			out.Settings.Root = relativizeRoot(out.Settings.Root)
			if dump != "" {
				if err := writeJSONFile(dump, out); err != nil {
					return err
				}
			}
			return printEnvelopeOneLine(cmd.OutOrStdout(), out)
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&dump, "dump", "", "Also write the envelope JSON to this path")
	return cmd
}

// relativizeRoot converts an absolute root under the current working
// directory to a relative path; otherwise returns the input.
func relativizeRoot(root string) string {
	if root == "" || root == "." {
		return root
	}
	if !filepath.IsAbs(root) {
		return filepath.ToSlash(root)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return root
	}
	rel, err := filepath.Rel(cwd, root)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return root
	}
	return filepath.ToSlash(rel)
}

func printEnvelopeOneLine(w io.Writer, env stage.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dump dir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
