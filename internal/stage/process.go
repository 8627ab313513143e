package stage

import (
	"context"

	humanize "github.com/dustin/go-humanize"

	"github.com/malteki/cargo-cleaner/internal/diskfree"
	"github.com/malteki/cargo-cleaner/internal/summary"
)

const processStage = "process"

// processRunner folds the clean results into a summary and measures the
// free space after cleaning.
func processRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	log := deps.logger()
	out := in
	s := summary.Process(in.Results, deps.parser(), log)
	out.Summary = &s
	log.Debug("processed results", "seen", s.ManifestsSeen, "succeeded", s.ManifestsSucceeded)

	if in.DiskFree != nil {
		if free, ok := diskfree.Free(in.Settings.Root); ok {
			c := diskfree.Change{Before: in.DiskFree.Before, After: free}
			out.DiskFree = &c
			log.Info("disk free: "+humanize.Bytes(c.Before)+" -> "+humanize.Bytes(c.After),
				"reclaimed", humanize.Bytes(c.Reclaimed()))
		} else {
			out.DiskFree = nil
		}
	}
	return out, nil
}

func init() { Register(processStage, processRunner) }
