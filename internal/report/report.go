// Package report writes a machine-readable summary of a clean run.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/malteki/cargo-cleaner/internal/diskfree"
	"github.com/malteki/cargo-cleaner/internal/summary"
	"github.com/malteki/cargo-cleaner/internal/timing"
)

// Format is the encoding of a report file.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("report %s: unsupported extension (want .yaml, .yml or .json)", path)
}

// Phase is a phase duration in milliseconds.
type Phase struct {
	Name string  `json:"name" yaml:"name"`
	Ms   float64 `json:"ms" yaml:"ms"`
}

// Report is the document written to disk. Field order is the output order.
type Report struct {
	Version            string            `json:"version,omitempty" yaml:"version,omitempty"`
	Root               string            `json:"root" yaml:"root"`
	MaxDepth           int               `json:"maxDepth" yaml:"maxDepth"`
	Program            string            `json:"program" yaml:"program"`
	Args               []string          `json:"args" yaml:"args,flow"`
	ManifestsSeen      int               `json:"manifestsSeen" yaml:"manifestsSeen"`
	ManifestsSucceeded int               `json:"manifestsSucceeded" yaml:"manifestsSucceeded"`
	FilesRemoved       uint32            `json:"filesRemoved" yaml:"filesRemoved"`
	BytesRemoved       uint64            `json:"bytesRemoved" yaml:"bytesRemoved"`
	BytesRemovedHuman  string            `json:"bytesRemovedHuman" yaml:"bytesRemovedHuman"`
	Failures           []summary.Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
	DiskFree           *diskfree.Change  `json:"diskFree,omitempty" yaml:"diskFree,omitempty"`
	DiskReclaimed      uint64            `json:"diskReclaimed,omitempty" yaml:"diskReclaimed,omitempty"`
	Phases             []Phase           `json:"phases,omitempty" yaml:"phases,omitempty"`
}

// Run describes the run a report is built from.
type Run struct {
	Version  string
	Root     string
	MaxDepth int
	Program  string
	Args     []string
	Summary  summary.Summary
	DiskFree *diskfree.Change
	Phases   []timing.PhaseDuration
}

// New builds the report document.
func New(r Run) Report {
	out := Report{
		Version:            r.Version,
		Root:               r.Root,
		MaxDepth:           r.MaxDepth,
		Program:            r.Program,
		Args:               append([]string{}, r.Args...),
		ManifestsSeen:      r.Summary.ManifestsSeen,
		ManifestsSucceeded: r.Summary.ManifestsSucceeded,
		FilesRemoved:       r.Summary.FilesRemoved,
		BytesRemoved:       r.Summary.BytesRemoved,
		BytesRemovedHuman:  humanize.Bytes(r.Summary.BytesRemoved),
		Failures:           r.Summary.Failures,
		DiskFree:           r.DiskFree,
	}
	if r.DiskFree != nil {
		out.DiskReclaimed = r.DiskFree.Reclaimed()
	}
	for _, p := range r.Phases {
		ms := float64(p.Duration.Round(100*time.Microsecond)) / float64(time.Millisecond)
		out.Phases = append(out.Phases, Phase{Name: p.Name, Ms: ms})
	}
	return out
}

// Marshal encodes rep in the given format with a trailing newline.
func Marshal(rep Report, f Format) ([]byte, error) {
	switch f {
	case YAML:
		return marshalYAML(rep)
	case JSON:
		return marshalJSON(rep)
	}
	return nil, fmt.Errorf("unknown report format %q", f)
}

// Write encodes rep according to the extension of path, creating parent
// directories.
func Write(path string, rep Report) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	b, err := Marshal(rep, f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
