// Package dispatch selects manifests from a walk and runs the clean command
// for each one on a bounded pool of workers.
package dispatch

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/malteki/cargo-cleaner/internal/logging"
	"github.com/malteki/cargo-cleaner/internal/walk"
)

// Config holds the read-only settings shared by all workers.
type Config struct {
	Program string
	Args    []string
	Env     map[string]string
	Workers int
	// Filter is an optional Lua predicate; empty selects every manifest.
	Filter string
	Logger *slog.Logger
}

// Dispatcher runs one command per selected manifest.
type Dispatcher struct {
	cmd     command
	workers int
	filter  *Filter
	log     *slog.Logger
}

// New validates cfg and returns a Dispatcher. Unknown argument placeholders
// and Lua syntax errors are reported here, before any walk starts.
func New(cfg Config) (*Dispatcher, error) {
	program := cfg.Program
	if program == "" {
		program = DefaultProgram
	}
	args := cfg.Args
	if len(args) == 0 {
		args = DefaultArgs
	}
	if err := ValidateArgs(args); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	d := &Dispatcher{
		cmd: command{
			program: program,
			args:    append([]string(nil), args...),
			env:     processEnv(cfg.Env),
			log:     log,
		},
		workers: workers,
		log:     log,
	}
	if cfg.Filter != "" {
		f, err := CompileFilter(cfg.Filter)
		if err != nil {
			return nil, err
		}
		d.filter = f
	}
	return d, nil
}

// Workers returns the size of the worker pool.
func (d *Dispatcher) Workers() int { return d.workers }

// Run consumes entries until the channel closes, starts one task per
// selected manifest and returns once every task has finished. There is
// exactly one Result per selected manifest, in completion order.
func (d *Dispatcher) Run(entries <-chan walk.Entry) []Result {
	var (
		mu      sync.Mutex
		results []Result
		g       errgroup.Group
	)
	g.SetLimit(d.workers)

	for e := range entries {
		if !d.selects(e) {
			continue
		}
		manifest := e.Path
		d.log.Debug("dispatching", "manifest", manifest)
		g.Go(func() error {
			r := d.cmd.run(manifest)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Select drains entries and returns the manifests Run would dispatch,
// sorted, without running anything.
func (d *Dispatcher) Select(entries <-chan walk.Entry) []string {
	var out []string
	for e := range entries {
		if d.selects(e) {
			out = append(out, e.Path)
		}
	}
	sort.Strings(out)
	return out
}

func (d *Dispatcher) selects(e walk.Entry) bool {
	if !IsManifest(e) {
		return false
	}
	if d.filter == nil {
		return true
	}
	keep, err := d.filter.Keep(e)
	if err != nil {
		d.log.Warn("lua filter failed, skipping manifest", "manifest", e.Path, "err", err)
		return false
	}
	if !keep {
		d.log.Debug("lua filter skipped manifest", "manifest", e.Path)
	}
	return keep
}
