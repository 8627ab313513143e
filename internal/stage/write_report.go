package stage

import (
	"context"
	"fmt"

	"github.com/malteki/cargo-cleaner/internal/report"
	"github.com/malteki/cargo-cleaner/internal/summary"
	"github.com/malteki/cargo-cleaner/internal/timing"
)

const writeReportStage = "write-report"

// writeReportRunner writes the run report when one was requested.
func writeReportRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	path := in.Settings.Report
	if path == "" {
		return in, nil
	}
	var s summary.Summary
	if in.Summary != nil {
		s = *in.Summary
	}
	var phases []timing.PhaseDuration
	if deps.Timing != nil {
		phases = deps.Timing.Phases()
	}
	rep := report.New(report.Run{
		Version:  deps.Version,
		Root:     in.Settings.Root,
		MaxDepth: in.Settings.MaxDepth,
		Program:  in.Settings.Program,
		Args:     in.Settings.Args,
		Summary:  s,
		DiskFree: in.DiskFree,
		Phases:   phases,
	})
	if err := report.Write(path, rep); err != nil {
		return Envelope{}, fmt.Errorf("write report: %w", err)
	}
	deps.logger().Debug("report written", "path", path)
	return in, nil
}

func init() { Register(writeReportStage, writeReportRunner) }
