package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Global structured logger shared by the library packages. Defaults to a
// text handler on stderr at info level; embedding applications replace it
// with Set.
var logger atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Store(l)
}

// L returns the current global logger.
func L() *slog.Logger { return logger.Load() }

// Set replaces the global logger.
func Set(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// New creates a logger with the given format ("text" or "json"), level, and
// optional writer (defaults to stderr).
func New(format string, level slog.Leveler, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}
