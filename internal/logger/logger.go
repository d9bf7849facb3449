package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is "json" (default) or "text".
	Format string
	// Writer defaults to stderr.
	Writer io.Writer
}

// New returns a structured logger for the generator.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: LevelFromString(opts.Level)}
	if strings.EqualFold(opts.Format, "text") {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts debug, info, warn or error (any case) to a slog.Level.
// Unrecognized strings yield info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default is the default logger instance.
var Default = New(Options{})
