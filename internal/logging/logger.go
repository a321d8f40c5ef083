package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

// Options configures a logger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown levels mean info.
	Level string

	// Writer receives the output; nil means stderr.
	Writer io.Writer

	// Prefix is printed before every message.
	Prefix string

	// Timestamps enables the time column, useful for long-running servers.
	Timestamps bool
}

// New creates a stderr logger with the specified level.
func New(level string) *log.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a logger from opts.
func NewWithOptions(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: opts.Timestamps,
		Prefix:          opts.Prefix,
	})
	logger.SetLevel(ParseLevel(opts.Level))
	return logger
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewWithOptions(Options{Writer: io.Discard, Level: "error"})
}
