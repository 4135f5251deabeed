package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultLogFile = "ledger-tui.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      string
	logFile      *os.File
	logger       = newLogger(io.Discard)
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       log.JSONFormatter,
	})
}

// DefaultPath returns the log location used when none is configured.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return defaultLogFile
	}
	return filepath.Join(dir, "ledger-tui", defaultLogFile)
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error())
}

// Info records a plain message with optional key/value pairs.
func Info(msg string, keyvals ...interface{}) {
	current().Info(msg, keyvals...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	if payload == nil {
		l.Debug(event)
		return
	}
	l.Debug(event, "payload", payload)
}

// SetOutput redirects the logger, mostly for tests. A nil writer discards.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logPath = ""
	logger = newLogger(w)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logFile = f
	logPath = path
	logger = newLogger(f)
	return nil
}

// Path returns the configured log file, or "" when not writing to a file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close releases the log file. Later entries are discarded.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = newLogger(io.Discard)
}

func closeFileLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}
