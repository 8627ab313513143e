package dispatch

import (
	"regexp"
	"strings"
)

// ManifestPlaceholder is replaced by the manifest path in every argument.
const ManifestPlaceholder = "{manifest}"

// DefaultProgram and DefaultArgs run `cargo clean` against one manifest.
const DefaultProgram = "cargo"

var DefaultArgs = []string{"clean", "--manifest-path", ManifestPlaceholder}

var placeholderPattern = regexp.MustCompile(`\{[^{}]+\}`)

// TemplateError reports an unknown placeholder in the argument template.
type TemplateError struct {
	Arg         string
	Placeholder string
}

func (e *TemplateError) Error() string {
	return "invalid placeholder " + e.Placeholder + " in argument " + e.Arg
}

// ValidateArgs checks that {manifest} is the only placeholder used.
func ValidateArgs(args []string) error {
	for _, a := range args {
		for _, m := range placeholderPattern.FindAllString(a, -1) {
			if m != ManifestPlaceholder {
				return &TemplateError{Arg: a, Placeholder: m}
			}
		}
	}
	return nil
}

func renderArgs(args []string, manifest string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, ManifestPlaceholder, manifest)
	}
	return out
}
