// Package walk produces the entries below a root directory. Directories are
// read concurrently, so the order of the produced entries is unspecified.
package walk

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/malteki/cargo-cleaner/internal/logging"
)

// Unbounded disables the depth limit.
const Unbounded = -1

// EntryType classifies a filesystem object without following symlinks.
type EntryType int

const (
	TypeOther EntryType = iota
	TypeFile
	TypeDir
	TypeSymlink
)

func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDir:
		return "dir"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one filesystem object. Depth 0 is the root itself.
type Entry struct {
	Path  string
	Type  EntryType
	Depth int
}

// Name returns the base name of the entry.
func (e Entry) Name() string { return filepath.Base(e.Path) }

// Options controls a walk.
type Options struct {
	// MaxDepth is the deepest level produced; directories at MaxDepth are
	// not read. Negative means unbounded, 0 yields only the root.
	MaxDepth int
	// Exclude lists directory names (case-insensitive) that are reported
	// but not descended into.
	Exclude []string
	// Gitignore prunes directories ignored by .gitignore files.
	Gitignore bool
	// Concurrency bounds simultaneous directory reads. Defaults to
	// 2*NumCPU.
	Concurrency int
	Logger      *slog.Logger
}

type walker struct {
	root     string
	maxDepth int
	exclude  map[string]bool
	ignore   bool
	sem      chan struct{}
	log      *slog.Logger
	out      chan<- Entry
	wg       sync.WaitGroup
}

// Walk starts walking root and returns the produced entries. The channel
// is closed once every reachable directory has been read. Nodes that cannot
// be read are skipped; a missing root produces nothing.
func Walk(root string, opts Options) <-chan Entry {
	out := make(chan Entry, 64)
	w := newWalker(root, opts, out)
	go func() {
		defer close(out)
		w.run()
	}()
	return out
}

// Collect drains ch into a slice.
func Collect(ch <-chan Entry) []Entry {
	var entries []Entry
	for e := range ch {
		entries = append(entries, e)
	}
	return entries
}

func newWalker(root string, opts Options, out chan<- Entry) *walker {
	n := opts.Concurrency
	if n <= 0 {
		n = 2 * runtime.NumCPU()
	}
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, e := range opts.Exclude {
		exclude[strings.ToLower(e)] = true
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &walker{
		root:     filepath.Clean(root),
		maxDepth: opts.MaxDepth,
		exclude:  exclude,
		ignore:   opts.Gitignore,
		sem:      make(chan struct{}, n),
		log:      log,
		out:      out,
	}
}

func (w *walker) run() {
	info, err := os.Lstat(w.root)
	if err != nil {
		w.log.Debug("cannot stat root", "path", w.root, "err", err)
		return
	}
	typ := typeOf(info.Mode())
	if typ == TypeSymlink {
		// The root itself is followed; links below it are not.
		if target, err := os.Stat(w.root); err == nil {
			typ = typeOf(target.Mode())
		}
	}
	w.out <- Entry{Path: w.root, Type: typ, Depth: 0}
	if typ != TypeDir || !w.descend(0) {
		return
	}
	w.wg.Add(1)
	go w.readDir(w.root, 0, nil)
	w.wg.Wait()
}

// descend reports whether a directory at depth has children within range.
func (w *walker) descend(depth int) bool {
	return w.maxDepth < 0 || depth < w.maxDepth
}

func (w *walker) readDir(dir string, depth int, inherited ignoreRules) {
	defer w.wg.Done()

	w.sem <- struct{}{}
	entries, err := os.ReadDir(dir)
	<-w.sem
	if err != nil {
		w.log.Debug("cannot read directory", "path", dir, "err", err)
		return
	}

	rules := inherited
	if w.ignore {
		rules = inherited.extend(w.root, dir)
	}

	childDepth := depth + 1
	for _, de := range entries {
		p := filepath.Join(dir, de.Name())
		typ := typeOf(de.Type())
		w.out <- Entry{Path: p, Type: typ, Depth: childDepth}

		if typ != TypeDir || !w.descend(childDepth) {
			continue
		}
		if w.exclude[strings.ToLower(de.Name())] {
			w.log.Debug("skipping excluded directory", "path", p)
			continue
		}
		if w.ignore && rules.matchDir(w.root, p) {
			w.log.Debug("skipping ignored directory", "path", p)
			continue
		}
		w.wg.Add(1)
		go w.readDir(p, childDepth, rules)
	}
}

func typeOf(m fs.FileMode) EntryType {
	switch {
	case m&fs.ModeSymlink != 0:
		return TypeSymlink
	case m.IsDir():
		return TypeDir
	case m.IsRegular():
		return TypeFile
	default:
		return TypeOther
	}
}
