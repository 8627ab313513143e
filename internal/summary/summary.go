// Package summary folds dispatch results into the totals of a run.
package summary

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/malteki/cargo-cleaner/internal/cleanout"
	"github.com/malteki/cargo-cleaner/internal/dispatch"
	"github.com/malteki/cargo-cleaner/internal/logging"
)

// Failure is a manifest whose command did not start or exited non-zero.
type Failure struct {
	Manifest string `json:"manifest" yaml:"manifest"`
	Reason   string `json:"reason" yaml:"reason"`
	ExitCode int    `json:"exitCode,omitempty" yaml:"exitCode,omitempty"`
}

// Summary is the aggregate of a run. ManifestsSucceeded never exceeds
// ManifestsSeen.
type Summary struct {
	cleanout.Delta     `yaml:",inline"`
	ManifestsSeen      int       `json:"manifestsSeen" yaml:"manifestsSeen"`
	ManifestsSucceeded int       `json:"manifestsSucceeded" yaml:"manifestsSucceeded"`
	Failures           []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Add folds d into the running totals.
func (s *Summary) Add(d cleanout.Delta) {
	s.Delta = s.Delta.Add(d)
}

// Failed reports whether any manifest failed.
func (s Summary) Failed() bool { return len(s.Failures) > 0 }

// Process classifies every result and sums the deltas parsed from
// successful runs. It never fails; problems are logged.
func Process(results []dispatch.Result, p *cleanout.Parser, log *slog.Logger) Summary {
	if p == nil {
		p = cleanout.NewParser()
	}
	if log == nil {
		log = logging.Discard()
	}
	var s Summary
	for _, r := range results {
		s.ManifestsSeen++
		switch r := r.(type) {
		case dispatch.Failed:
			log.Warn("clean command did not run", "manifest", r.Manifest, "err", r.Err)
			s.Failures = append(s.Failures, Failure{Manifest: r.Manifest, Reason: r.Err})
		case dispatch.Completed:
			if !r.Success {
				stderr := r.StderrText()
				log.Debug("clean command failed", "manifest", r.Manifest, "exit", r.ExitCode, "stderr", stderr)
				s.Failures = append(s.Failures, Failure{
					Manifest: r.Manifest,
					Reason:   firstLine(stderr),
					ExitCode: r.ExitCode,
				})
				continue
			}
			s.ManifestsSucceeded++
			d, ok := p.ParseBytes(r.Stderr)
			if !ok {
				log.Debug("no removal summary in output", "manifest", r.Manifest)
				continue
			}
			log.Debug("parsed removal summary", "manifest", r.Manifest, "files", d.FilesRemoved, "bytes", d.BytesRemoved)
			s.Add(d)
		}
	}
	return s
}

// Lines returns the two human-readable result lines.
func Lines(s Summary) []string {
	return []string{
		fmt.Sprintf("ran successfully on %d/%d cargo.toml files", s.ManifestsSucceeded, s.ManifestsSeen),
		fmt.Sprintf("removed %d files (%s)", s.FilesRemoved, humanize.Bytes(s.BytesRemoved)),
	}
}

// Render writes Lines to w.
func Render(w io.Writer, s Summary) error {
	_, err := io.WriteString(w, strings.Join(Lines(s), "\n")+"\n")
	return err
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "exited with non-zero status"
}
