// Package config resolves run settings from built-in defaults, an optional
// CUE file, CARGO_CLEANER_* environment variables and command-line flags.
package config

import (
	"cuelang.org/go/cue"
)

// File is the content of a CUE config file. Has* fields record which
// optional values were present.
type File struct {
	ConfigVersion string

	Root      string
	MaxDepth  int
	LogLevel  string
	Workers   int
	Program   string
	Args      []string
	Env       map[string]string
	Exclude   []string
	Gitignore bool
	Filter    string
	Report    string
	Strict    bool
	NoProcess bool
	Timings   bool

	HasRoot      bool
	HasMaxDepth  bool
	HasLogLevel  bool
	HasWorkers   bool
	HasProgram   bool
	HasArgs      bool
	HasEnv       bool
	HasExclude   bool
	HasGitignore bool
	HasFilter    bool
	HasReport    bool
	HasStrict    bool
	HasNoProcess bool
	HasTimings   bool
}

var knownFields = map[string]bool{
	"configVersion": true,
	"root":          true,
	"maxDepth":      true,
	"logLevel":      true,
	"workers":       true,
	"program":       true,
	"args":          true,
	"env":           true,
	"exclude":       true,
	"gitignore":     true,
	"filter":        true,
	"report":        true,
	"strict":        true,
	"noProcess":     true,
	"timings":       true,
}

// LoadFile reads and type-checks a CUE config file. Every field is
// optional; unknown top-level fields are rejected.
func LoadFile(path string) (File, error) {
	v, err := compileCUE(path)
	if err != nil {
		return File{}, err
	}
	return parseFile(v)
}

func parseFile(v cue.Value) (File, error) {
	var f File
	it, err := v.Fields()
	if err != nil {
		return File{}, &FieldError{Field: "<top>", Want: "struct"}
	}
	for it.Next() {
		name := it.Selector().Unquoted()
		if !knownFields[name] {
			return File{}, &UnknownFieldError{Field: name}
		}
	}

	steps := []func() error{
		func() error {
			ok, err := decodeString(v, "configVersion", &f.ConfigVersion)
			if err != nil || !ok {
				return err
			}
			return checkConfigVersion(f.ConfigVersion)
		},
		func() (err error) { f.HasRoot, err = decodeString(v, "root", &f.Root); return },
		func() (err error) { f.HasMaxDepth, err = decodeInt(v, "maxDepth", &f.MaxDepth); return },
		func() (err error) { f.HasLogLevel, err = decodeString(v, "logLevel", &f.LogLevel); return },
		func() (err error) { f.HasWorkers, err = decodeInt(v, "workers", &f.Workers); return },
		func() (err error) { f.HasProgram, err = decodeString(v, "program", &f.Program); return },
		func() (err error) { f.HasArgs, err = decodeStrings(v, "args", &f.Args); return },
		func() (err error) { f.HasEnv, err = decodeStringMap(v, "env", &f.Env); return },
		func() (err error) { f.HasExclude, err = decodeStrings(v, "exclude", &f.Exclude); return },
		func() (err error) { f.HasGitignore, err = decodeBool(v, "gitignore", &f.Gitignore); return },
		func() (err error) { f.HasFilter, err = decodeString(v, "filter", &f.Filter); return },
		func() (err error) { f.HasReport, err = decodeString(v, "report", &f.Report); return },
		func() (err error) { f.HasStrict, err = decodeBool(v, "strict", &f.Strict); return },
		func() (err error) { f.HasNoProcess, err = decodeBool(v, "noProcess", &f.NoProcess); return },
		func() (err error) { f.HasTimings, err = decodeBool(v, "timings", &f.Timings); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return File{}, err
		}
	}
	if f.HasWorkers && f.Workers < 0 {
		return File{}, &FieldError{Field: "workers", Want: "int >= 0"}
	}
	return f, nil
}
