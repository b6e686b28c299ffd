// Package logging opens the application log. The terminal belongs to the
// TUI, so everything goes to a file as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Second
}

// New returns a logger writing timestamped JSON lines to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Open appends to the log file at path, creating parent directories.
// The returned closer closes the file.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f), f, nil
}

// Discard returns a logger that drops everything.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}

// OpenOrDiscard is Open falling back to Discard. The error, if any, is
// returned for display.
func OpenOrDiscard(path string) (zerolog.Logger, io.Closer, error) {
	logger, closer, err := Open(path)
	if err != nil {
		return Discard(), nopCloser{}, err
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
