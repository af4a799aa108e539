// Package log builds the application logger on top of charmbracelet/log.
//
// The terminal belongs to the UI, so logs go to a file (or are discarded
// when no file is configured).
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charm "github.com/charmbracelet/log"
)

// Options holds the settings used to build a logger.
type Options struct {
	Level     string
	Format    string
	Prefix    string
	Timestamp bool
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *charm.Logger {
	return charm.NewWithOptions(w, charm.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamp,
		Prefix:          opts.Prefix,
	})
}

// Open creates a logger appending to path. An empty path yields a logger
// that discards everything. The returned closer is never nil.
func Open(path string, opts Options) (*charm.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts), f, nil
}

// Discard returns a logger that writes nowhere.
func Discard() *charm.Logger {
	return charm.New(io.Discard)
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(level string) charm.Level {
	switch level {
	case "debug":
		return charm.DebugLevel
	case "info":
		return charm.InfoLevel
	case "warn", "warning":
		return charm.WarnLevel
	case "error":
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}

// ParseFormatter maps a config string to a formatter, defaulting to text.
func ParseFormatter(format string) charm.Formatter {
	switch format {
	case "json":
		return charm.JSONFormatter
	case "logfmt":
		return charm.LogfmtFormatter
	default:
		return charm.TextFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
