// Package logging builds the app logger. The terminal belongs to the UI, so
// log records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"

	"volumetric/internal/dirs"
)

// New returns a logger writing text records to path, or to the default log
// file in the state dir when path is empty. Verbose enables V(1) and up.
// Close the returned io.Closer on exit.
func New(path string, verbose bool) (logr.Logger, io.Closer, error) {
	if path == "" {
		p, err := dirs.LogFile()
		if err != nil {
			return logr.Discard(), nopCloser{}, fmt.Errorf("resolve log file: %w", err)
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return FromWriter(f, verbose), f, nil
}

// FromWriter returns a logger writing text records to w.
func FromWriter(w io.Writer, verbose bool) logr.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return logr.FromSlogHandler(h).WithName("volumetric")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
