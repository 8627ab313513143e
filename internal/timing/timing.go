// Package timing records wall-clock durations of named run phases.
package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// PhaseDuration is one recorded phase.
type PhaseDuration struct {
	Name     string
	Duration time.Duration
}

// Recorder collects phase durations. A disabled Recorder still runs the
// phases but renders nothing.
type Recorder struct {
	enabled bool
	now     func() time.Time
	phases  []PhaseDuration
}

// New returns a Recorder.
func New(enabled bool) *Recorder {
	return &Recorder{enabled: enabled, now: time.Now}
}

// SetEnabled switches rendering on or off; recorded phases are kept.
func (r *Recorder) SetEnabled(enabled bool) { r.enabled = enabled }

// Phase runs fn and records how long it took, even when fn fails.
func (r *Recorder) Phase(name string, fn func() error) error {
	start := r.now()
	err := fn()
	r.Record(name, r.now().Sub(start))
	return err
}

// Record appends an externally measured phase.
func (r *Recorder) Record(name string, d time.Duration) {
	r.phases = append(r.phases, PhaseDuration{Name: name, Duration: d})
}

// Phases returns the recorded phases in order.
func (r *Recorder) Phases() []PhaseDuration {
	return append([]PhaseDuration(nil), r.phases...)
}

// Total is the sum of all phases.
func (r *Recorder) Total() time.Duration {
	var t time.Duration
	for _, p := range r.phases {
		t += p.Duration
	}
	return t
}

// Render writes the phase table to w when enabled.
func (r *Recorder) Render(w io.Writer) {
	if !r.enabled || len(r.phases) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"total", Format(r.Total())})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	for _, p := range r.phases {
		table.Append([]string{p.Name, Format(p.Duration)})
	}
	table.Render()
}

// Format renders d in milliseconds with one decimal, e.g. "12.3ms".
func Format(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}
