package walk

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreRules are the .gitignore patterns collected from the root down to a
// directory. The slice is shared between siblings and never mutated.
type ignoreRules []gitignore.Pattern

// extend returns the rules with the patterns of dir/.gitignore appended.
func (r ignoreRules) extend(root, dir string) ignoreRules {
	b, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return r
	}
	domain := components(root, dir)
	out := append(ignoreRules(nil), r...)
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, gitignore.ParsePattern(line, domain))
	}
	return out
}

func (r ignoreRules) matchDir(root, p string) bool {
	if len(r) == 0 {
		return false
	}
	return gitignore.NewMatcher(r).Match(components(root, p), true)
}

// components splits p relative to root into path elements.
func components(root, p string) []string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return []string{}
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}
