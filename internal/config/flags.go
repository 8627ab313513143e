package config

import (
	"github.com/spf13/pflag"

	"github.com/malteki/cargo-cleaner/internal/walk"
)

// Flag names that are not settings keys.
const (
	FlagConfig  = "config"
	FlagEnvFile = "env-file"
)

// RegisterFlags adds the run setting flags to fs. Their defaults only
// document the built-in values; Resolve ignores flags that were not set.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Defaults()
	fs.StringP(FlagConfig, "c", "", "Path to config file (.cue)")
	fs.String(FlagEnvFile, DefaultEnvFile, "Load environment variables from this file when it exists")
	fs.IntP(FlagNames[KeyMaxDepth], "d", walk.Unbounded, "Maximum directory depth below the root (-1 for unbounded)")
	fs.StringP(FlagNames[KeyLogLevel], "l", def.LogLevel, "Log level: trace, debug, info, warn or error")
	fs.IntP(FlagNames[KeyWorkers], "w", 0, "Concurrent clean commands (0 for one per CPU)")
	fs.String(FlagNames[KeyProgram], def.Program, "Program run for every manifest")
	fs.StringArray(FlagNames[KeyArgs], nil, "Argument template for the program, repeatable; {manifest} is the manifest path")
	fs.StringArray(FlagNames[KeyExclude], nil, "Directory name not to descend into, repeatable")
	fs.Bool(FlagNames[KeyGitignore], false, "Do not descend into directories ignored by .gitignore files")
	fs.String(FlagNames[KeyFilter], "", "Lua predicate over path, dir and depth selecting manifests")
	fs.String(FlagNames[KeyReport], "", "Write a run report (.yaml, .yml or .json)")
	fs.Bool(FlagNames[KeyStrict], false, "Exit with status 1 when any manifest failed")
	fs.Bool(FlagNames[KeyNoProcess], false, "Run the clean commands but skip output processing")
	fs.BoolP(FlagNames[KeyTimings], "t", false, "Print phase timings")
}

// OptionsFromFlags builds Options from flags registered by RegisterFlags.
func OptionsFromFlags(fs *pflag.FlagSet, root string) Options {
	cfgPath, _ := fs.GetString(FlagConfig)
	envFile, _ := fs.GetString(FlagEnvFile)
	return Options{ConfigPath: cfgPath, EnvFile: envFile, Flags: fs, Root: root}
}
