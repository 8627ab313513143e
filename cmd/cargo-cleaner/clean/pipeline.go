package clean

import (
	"context"
	"log/slog"

	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/stage"
)

// phase is a stage run under a timing label.
type phase struct {
	label string
	stage string
}

func pipelineFor(s config.Settings, log *slog.Logger) []phase {
	phases := []phase{{label: "clean", stage: "clean"}}
	if s.NoProcess {
		log.Debug("output processing disabled")
		return phases
	}
	phases = append(phases, phase{label: "process", stage: "process"})
	if s.Report != "" {
		phases = append(phases, phase{label: "report", stage: "write-report"})
	}
	return phases
}

// runPipeline executes the phases in order, timing each one.
func runPipeline(ctx context.Context, in stage.Envelope, deps stage.Deps, phases []phase) (stage.Envelope, error) {
	out := in
	for _, p := range phases {
		err := deps.Timing.Phase(p.label, func() error {
			next, err := stage.Run(ctx, p.stage, out, deps)
			if err != nil {
				return err
			}
			out = next
			return nil
		})
		if err != nil {
			return stage.Envelope{}, err
		}
	}
	return out, nil
}
