package clean

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/malteki/cargo-cleaner/internal/buildinfo"
	"github.com/malteki/cargo-cleaner/internal/cleanout"
	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/logging"
	"github.com/malteki/cargo-cleaner/internal/stage"
	"github.com/malteki/cargo-cleaner/internal/summary"
	"github.com/malteki/cargo-cleaner/internal/timing"
)

// NewCmd creates `cargo-cleaner clean [DIR]`.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [DIR]",
		Short: "Run cargo clean for every Cargo.toml below DIR (default: current directory)",
		Long: `Walks DIR, runs "cargo clean --manifest-path <manifest>" for every
Cargo.toml or cargo.toml found, and reports how many files and bytes were
removed. Failing manifests are logged and do not stop the run.

Settings are read from built-in defaults, the --config CUE file,
CARGO_CLEANER_* environment variables (also loaded from --env-file) and
flags, each layer overriding the previous one.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd.Context(), cmd.Flags(), root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, fs *pflag.FlagSet, root string, stdout, stderr io.Writer) error {
	rec := timing.New(false)
	var (
		env stage.Envelope
		log *slog.Logger
	)
	err := rec.Phase("init", func() error {
		s, err := config.Resolve(config.OptionsFromFlags(fs, root))
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(s.LogLevel)
		if err != nil {
			return err
		}
		log = logging.New(stderr, level)
		env = stage.Envelope{Settings: s}
		return nil
	})
	if err != nil {
		return err
	}
	rec.SetEnabled(env.Settings.Timings)
	log.Debug("settings resolved", "root", env.Settings.Root, "config", env.Settings.ConfigPath)

	deps := stage.Deps{
		Logger:  log,
		Parser:  cleanout.NewParser(),
		Timing:  rec,
		Version: buildinfo.Get().Version,
	}
	env, err = runPipeline(ctx, env, deps, pipelineFor(env.Settings, log))
	if err != nil {
		return err
	}

	if env.Summary != nil {
		if err := summary.Render(stdout, *env.Summary); err != nil {
			return err
		}
	}
	rec.Render(stdout)
	return exitError(env)
}
