package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type levelStyles struct {
	trace, debug, info, warn, err lipgloss.Style
}

func newLevelStyles(w io.Writer) *levelStyles {
	r := lipgloss.NewRenderer(w)
	return &levelStyles{
		trace: r.NewStyle().Foreground(lipgloss.Color("8")),
		debug: r.NewStyle().Foreground(lipgloss.Color("12")),
		info:  r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		err:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (s *levelStyles) render(l slog.Level, label string) string {
	if s == nil {
		return label
	}
	switch {
	case l < slog.LevelDebug:
		return s.trace.Render(label)
	case l < slog.LevelInfo:
		return s.debug.Render(label)
	case l < slog.LevelWarn:
		return s.info.Render(label)
	case l < slog.LevelError:
		return s.warn.Render(label)
	default:
		return s.err.Render(label)
	}
}

// colorEnabled reports whether w is an interactive terminal and NO_COLOR
// is unset.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New builds a logger writing to w at the given level. Level names are
// colored when w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	var styles *levelStyles
	if colorEnabled(w) {
		styles = newLevelStyles(w)
	}
	return slog.New(NewHandler(w, level, styles))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, slog.Level(127), nil))
}
