// Package stage holds the named steps of a clean run. Each stage takes the
// run Envelope and returns the next one; the command runs them in order.
package stage

import (
	"context"
	"log/slog"
	"sort"

	"github.com/malteki/cargo-cleaner/internal/cleanout"
	"github.com/malteki/cargo-cleaner/internal/logging"
	"github.com/malteki/cargo-cleaner/internal/timing"
)

// Deps are the collaborators shared by all stages.
type Deps struct {
	Logger  *slog.Logger
	Parser  *cleanout.Parser
	Timing  *timing.Recorder
	Version string
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

func (d Deps) parser() *cleanout.Parser {
	if d.Parser == nil {
		return cleanout.NewParser()
	}
	return d.Parser
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	return r(ctx, in, deps)
}

// Names lists the registered stages.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
