package stage

import (
	"log/slog"

	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/dispatch"
	"github.com/malteki/cargo-cleaner/internal/walk"
)

func walkOptions(s config.Settings, log *slog.Logger) walk.Options {
	return walk.Options{
		MaxDepth:  s.MaxDepth,
		Exclude:   s.Exclude,
		Gitignore: s.Gitignore,
		Logger:    log,
	}
}

func newDispatcher(s config.Settings, log *slog.Logger) (*dispatch.Dispatcher, error) {
	return dispatch.New(dispatch.Config{
		Program: s.Program,
		Args:    s.Args,
		Env:     s.Env,
		Workers: s.Workers,
		Filter:  s.Filter,
		Logger:  log,
	})
}
