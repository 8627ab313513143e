// Package buildinfo exposes version metadata set at build time, e.g.
//
//	-ldflags "-X github.com/malteki/cargo-cleaner/internal/buildinfo.Version=0.3.0"
//
// When Commit or Date are unset they fall back to the VCS stamp the Go
// toolchain embeds in the binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Dirty   bool   `json:"dirty,omitempty"`
}

// Get resolves the build metadata.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if info.Version == "" {
		info.Version = "dev"
	}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Summary returns a concise single-line version string.
func Summary() string {
	info := Get()
	v := info.Version
	parts := make([]string, 0, 2)
	if c := info.Commit; c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		if info.Dirty {
			c += "-dirty"
		}
		parts = append(parts, "commit="+c)
	}
	if info.Date != "" {
		parts = append(parts, "date="+info.Date)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
