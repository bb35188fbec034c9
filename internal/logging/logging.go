// Package logging sets up the application logger. The TUI owns the
// terminal, so logs only go to a file when one is configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Options controls where and how much is logged
type Options struct {
	File  string
	Debug bool
}

// New returns a logger and a close function. With no file configured the
// logger discards everything.
func New(opts Options) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return Discard(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewWithWriter(f, opts.Debug), f.Close, nil
}

// NewWithWriter returns a text logger writing to w
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
