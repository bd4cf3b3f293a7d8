// Package logging builds the application logger. The TUI owns the terminal,
// so log records go to a rotating file in the config directory.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 14
)

// New returns a logfmt logger writing to a rotating file at path, and the
// closer for that file. verbose forces the debug level.
func New(path, level string, verbose bool) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		lvl = log.DebugLevel
	}

	rw := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return NewWithWriter(rw, lvl), rw, nil
}

// NewWithWriter returns a logfmt logger on w at the given level.
func NewWithWriter(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Formatter:       log.LogfmtFormatter,
		Prefix:          "counterdapp",
	})
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *log.Logger {
	return NewWithWriter(io.Discard, log.ErrorLevel)
}
