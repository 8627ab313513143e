package dispatch

import "github.com/malteki/cargo-cleaner/internal/cleanout"

// Result is the outcome of one clean invocation. It is either Failed or
// Completed.
type Result interface {
	ManifestPath() string
	result()
}

// Failed means the command could not be started or waited on.
type Failed struct {
	Manifest string
	Err      string
}

// Completed means the command ran to completion. Success is false when it
// exited non-zero.
type Completed struct {
	Manifest string
	Success  bool
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (f Failed) ManifestPath() string    { return f.Manifest }
func (c Completed) ManifestPath() string { return c.Manifest }

func (Failed) result()    {}
func (Completed) result() {}

// StderrText returns stderr decoded as UTF-8 with invalid bytes replaced.
func (c Completed) StderrText() string { return cleanout.Text(c.Stderr) }

// StdoutText is StderrText for stdout.
func (c Completed) StdoutText() string { return cleanout.Text(c.Stdout) }
