package stage

import (
	"context"
	"log/slog"

	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/diskfree"
	"github.com/malteki/cargo-cleaner/internal/walk"
)

const cleanStage = "clean"

// cleanRunner walks the root and runs the clean command for every selected
// manifest. Results are collected only after all commands have finished.
func cleanRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	log := deps.logger()
	s := in.Settings
	d, err := newDispatcher(s, log)
	if err != nil {
		return Envelope{}, err
	}

	out := in
	if free, ok := diskfree.Free(s.Root); ok {
		out.DiskFree = &diskfree.Change{Before: free}
	} else {
		log.Debug("disk free unavailable", "path", s.Root)
	}

	log.Debug("cleaning", "root", s.Root, "maxDepth", s.MaxDepth, "workers", d.Workers(), "program", s.Program)
	out.Results = d.Run(walkEntries(s, log))
	log.Debug("clean commands finished", "count", len(out.Results))
	return out, nil
}

func walkEntries(s config.Settings, log *slog.Logger) <-chan walk.Entry {
	return walk.Walk(s.Root, walkOptions(s, log))
}

func init() { Register(cleanStage, cleanRunner) }
