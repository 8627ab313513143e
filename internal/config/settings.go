package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/malteki/cargo-cleaner/internal/dispatch"
	"github.com/malteki/cargo-cleaner/internal/logging"
	"github.com/malteki/cargo-cleaner/internal/report"
	"github.com/malteki/cargo-cleaner/internal/walk"
)

// EnvPrefix prefixes every environment variable read by Resolve, e.g.
// CARGO_CLEANER_MAX_DEPTH.
const EnvPrefix = "CARGO_CLEANER"

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

// Setting keys. Environment variables are EnvPrefix + "_" + upper(key).
const (
	KeyRoot      = "root"
	KeyMaxDepth  = "max_depth"
	KeyLogLevel  = "log_level"
	KeyWorkers   = "workers"
	KeyProgram   = "program"
	KeyArgs      = "args"
	KeyExclude   = "exclude"
	KeyGitignore = "gitignore"
	KeyFilter    = "filter"
	KeyReport    = "report"
	KeyStrict    = "strict"
	KeyNoProcess = "no_process"
	KeyTimings   = "timings"
)

// FlagNames maps setting keys to the command-line flags bound to them.
var FlagNames = map[string]string{
	KeyMaxDepth:  "max-depth",
	KeyLogLevel:  "log-level",
	KeyWorkers:   "workers",
	KeyProgram:   "program",
	KeyArgs:      "arg",
	KeyExclude:   "exclude",
	KeyGitignore: "gitignore",
	KeyFilter:    "filter",
	KeyReport:    "report",
	KeyStrict:    "strict",
	KeyNoProcess: "no-process",
	KeyTimings:   "timings",
}

// Settings are the resolved options of a clean run.
type Settings struct {
	ConfigPath string            `json:"configPath,omitempty"`
	Root       string            `json:"root"`
	MaxDepth   int               `json:"maxDepth"`
	LogLevel   string            `json:"logLevel"`
	Workers    int               `json:"workers"`
	Program    string            `json:"program"`
	Args       []string          `json:"args"`
	Env        map[string]string `json:"env,omitempty"`
	Exclude    []string          `json:"exclude,omitempty"`
	Gitignore  bool              `json:"gitignore"`
	Filter     string            `json:"filter,omitempty"`
	Report     string            `json:"report,omitempty"`
	Strict     bool              `json:"strict"`
	NoProcess  bool              `json:"noProcess"`
	Timings    bool              `json:"timings"`
}

// Defaults returns the built-in settings. Workers 0 means one per CPU.
func Defaults() Settings {
	return Settings{
		Root:     ".",
		MaxDepth: walk.Unbounded,
		LogLevel: "info",
		Program:  dispatch.DefaultProgram,
		Args:     append([]string(nil), dispatch.DefaultArgs...),
	}
}

// Options locate the inputs of Resolve.
type Options struct {
	// ConfigPath is the CUE file; empty falls back to CARGO_CLEANER_CONFIG.
	ConfigPath string
	// EnvFile is loaded into the process environment without overriding
	// variables that are already set. A missing file is ignored.
	EnvFile string
	// Flags are bound by FlagNames; only flags that were set take effect.
	Flags *pflag.FlagSet
	// Root is the positional directory argument, the highest layer.
	Root string
}

// Resolve layers defaults, the config file, the environment and flags, in
// increasing precedence, and validates the result.
func Resolve(opts Options) (Settings, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Settings{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := Defaults()
	v.SetDefault(KeyRoot, def.Root)
	v.SetDefault(KeyMaxDepth, def.MaxDepth)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyProgram, def.Program)
	v.SetDefault(KeyArgs, def.Args)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyGitignore, false)
	v.SetDefault(KeyFilter, "")
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyNoProcess, false)
	v.SetDefault(KeyTimings, false)

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv(EnvPrefix + "_CONFIG")
	}
	var env map[string]string
	if cfgPath != "" {
		f, err := LoadFile(cfgPath)
		if err != nil {
			return Settings{}, err
		}
		applyFile(v, f)
		env = f.Env
	}

	if opts.Flags != nil {
		for key, name := range FlagNames {
			if fl := opts.Flags.Lookup(name); fl != nil {
				if err := v.BindPFlag(key, fl); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}
	if opts.Root != "" {
		v.Set(KeyRoot, opts.Root)
	}

	s := Settings{
		ConfigPath: cfgPath,
		Root:       v.GetString(KeyRoot),
		LogLevel:   v.GetString(KeyLogLevel),
		Program:    v.GetString(KeyProgram),
		Args:       v.GetStringSlice(KeyArgs),
		Env:        env,
		Exclude:    v.GetStringSlice(KeyExclude),
		Gitignore:  v.GetBool(KeyGitignore),
		Filter:     v.GetString(KeyFilter),
		Report:     v.GetString(KeyReport),
		Strict:     v.GetBool(KeyStrict),
		NoProcess:  v.GetBool(KeyNoProcess),
		Timings:    v.GetBool(KeyTimings),
	}
	var err error
	if s.MaxDepth, err = getInt(v, KeyMaxDepth); err != nil {
		return Settings{}, err
	}
	if s.Workers, err = getInt(v, KeyWorkers); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	if s.Root == "" {
		return &FieldError{Field: KeyRoot, Want: "non-empty path"}
	}
	if s.Workers < 0 {
		return &FieldError{Field: KeyWorkers, Want: "int >= 0"}
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.Program == "" {
		return &FieldError{Field: KeyProgram, Want: "non-empty string"}
	}
	if len(s.Args) == 0 {
		return &FieldError{Field: KeyArgs, Want: "non-empty list"}
	}
	if err := dispatch.ValidateArgs(s.Args); err != nil {
		return err
	}
	if s.Filter != "" {
		if _, err := dispatch.CompileFilter(s.Filter); err != nil {
			return err
		}
	}
	if s.Report != "" {
		if _, err := report.FormatFor(s.Report); err != nil {
			return err
		}
	}
	return nil
}

func applyFile(v *viper.Viper, f File) {
	if f.HasRoot {
		v.SetDefault(KeyRoot, f.Root)
	}
	if f.HasMaxDepth {
		v.SetDefault(KeyMaxDepth, f.MaxDepth)
	}
	if f.HasLogLevel {
		v.SetDefault(KeyLogLevel, f.LogLevel)
	}
	if f.HasWorkers {
		v.SetDefault(KeyWorkers, f.Workers)
	}
	if f.HasProgram {
		v.SetDefault(KeyProgram, f.Program)
	}
	if f.HasArgs {
		v.SetDefault(KeyArgs, f.Args)
	}
	if f.HasExclude {
		v.SetDefault(KeyExclude, f.Exclude)
	}
	if f.HasGitignore {
		v.SetDefault(KeyGitignore, f.Gitignore)
	}
	if f.HasFilter {
		v.SetDefault(KeyFilter, f.Filter)
	}
	if f.HasReport {
		v.SetDefault(KeyReport, f.Report)
	}
	if f.HasStrict {
		v.SetDefault(KeyStrict, f.Strict)
	}
	if f.HasNoProcess {
		v.SetDefault(KeyNoProcess, f.NoProcess)
	}
	if f.HasTimings {
		v.SetDefault(KeyTimings, f.Timings)
	}
}

// getInt reads an int, rejecting environment values that are not numbers.
func getInt(v *viper.Viper, key string) (int, error) {
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, &FieldError{Field: key, Want: "int"}
		}
		return n, nil
	}
	return v.GetInt(key), nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}
