// Package logger builds charmbracelet/log loggers that stay off stdout,
// which the IPC server owns.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Setup configures the package level charm logger used across wordbench.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		log.SetTimeFormat(time.Kitchen)
		log.Debug("Debug mode enabled")
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
}

// New creates a prefixed logger following the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, log.TextFormatter)
}

// NewWithWriter creates a prefixed logger writing to w with formatter f.
func NewWithWriter(w io.Writer, prefix string, f log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       f,
		Level:           log.GetLevel(),
	})
}
