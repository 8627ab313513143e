package stage

import (
	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/diskfree"
	"github.com/malteki/cargo-cleaner/internal/dispatch"
	"github.com/malteki/cargo-cleaner/internal/summary"
)

// Envelope is the state of a run passed between stages. Results are raw
// process output and are not serialized.
type Envelope struct {
	Settings  config.Settings   `json:"settings"`
	Manifests []string          `json:"manifests,omitempty"`
	Results   []dispatch.Result `json:"-"`
	Summary   *summary.Summary  `json:"summary,omitempty"`
	DiskFree  *diskfree.Change  `json:"diskFree,omitempty"`
}

// FailureCount counts manifests whose command did not start or exited
// non-zero. It uses the summary when present and the raw results otherwise.
func (e Envelope) FailureCount() int {
	if e.Summary != nil {
		return len(e.Summary.Failures)
	}
	n := 0
	for _, r := range e.Results {
		switch r := r.(type) {
		case dispatch.Failed:
			n++
		case dispatch.Completed:
			if !r.Success {
				n++
			}
		}
	}
	return n
}
