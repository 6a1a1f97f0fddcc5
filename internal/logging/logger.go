// Package logging writes the editor's structured session log. The TUI owns
// the terminal while it runs, so everything goes to a log file users can
// inspect afterwards.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// FileLogger couples a zerolog.Logger with its backing file handle.
type FileLogger struct {
	Log  zerolog.Logger
	file *os.File
}

// New opens (or creates) the log file at path and returns a logger writing
// timestamped JSON lines to it.
func New(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).With().Timestamp().Logger()
	return &FileLogger{Log: logger, file: f}, nil
}

// Close releases the file handle.
func (l *FileLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Nop returns a logger that discards everything, for tests and for running
// without a writable log location.
func Nop() *FileLogger {
	return &FileLogger{Log: zerolog.Nop()}
}
