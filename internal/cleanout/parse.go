// Package cleanout extracts the removal summary that `cargo clean` prints on
// stderr ("Removed 12 files, 3.4MiB total").
package cleanout

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	humanize "github.com/dustin/go-humanize"
)

const summaryPattern = `Removed (\d+) files(?:, ([\d.]+[A-Za-z]+) total)?`

// Parser matches the summary line. A Parser is immutable and safe for
// concurrent use.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles the summary pattern.
func NewParser() *Parser {
	return &Parser{re: regexp.MustCompile(summaryPattern)}
}

var defaultParser = sync.OnceValue(NewParser)

// Parse runs the package parser, built on first use.
func Parse(text string) (Delta, bool) {
	return defaultParser().Parse(text)
}

// Parse returns the delta reported in text and whether a summary line was
// found. Only the first summary line counts. A missing or unreadable size
// yields zero bytes.
func (p *Parser) Parse(text string) (Delta, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return Delta{}, false
	}
	files, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Delta{}, false
	}
	return Delta{FilesRemoved: uint32(files), BytesRemoved: parseSize(m[2])}, true
}

// ParseBytes decodes raw diagnostics, replacing invalid UTF-8 first.
func (p *Parser) ParseBytes(b []byte) (Delta, bool) {
	return p.Parse(Text(b))
}

// Text converts a captured stream to a string, replacing invalid UTF-8
// sequences with U+FFFD.
func Text(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// parseSize turns "3.4MB" or "1.5MiB" into an exact byte count.
func parseSize(s string) uint64 {
	if s == "" {
		return 0
	}
	n, err := humanize.ParseBigBytes(s)
	if err != nil || n.Sign() < 0 || !n.IsUint64() {
		return 0
	}
	return n.Uint64()
}
