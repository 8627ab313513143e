package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel accepts trace, debug, info, warn (or warning) and error,
// case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (expected trace, debug, info, warn or error)", s)
	}
}
