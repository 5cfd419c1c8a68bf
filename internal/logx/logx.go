// Package logx configures the process-wide structured logger.
//
// Logs are JSON lines with UTC timestamps. The terminal UI owns the screen,
// so interactive runs point the logger at a file; subcommands log to stderr.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
	closer   io.Closer
)

// Init points the global logger at w, logging at level and above.
func Init(w io.Writer, level slog.Level) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = newLogger(w, level)
	slog.SetDefault(logger)
}

// InitFile opens (appending) the log file at path and points the global
// logger at it. Parent directories are created with 0700.
func InitFile(path string, level slog.Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	loggerMu.Lock()
	prev := closer
	closer = f
	loggerMu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	Init(f, level)
	return nil
}

// Close releases the log file opened by InitFile, if any.
func Close() error {
	loggerMu.Lock()
	c := closer
	closer = nil
	loggerMu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}

// SetOutputForTests overrides the global logger output for tests.
func SetOutputForTests(w io.Writer) func() {
	loggerMu.Lock()
	prev := logger
	logger = newLogger(w, slog.LevelDebug)
	slog.SetDefault(logger)
	loggerMu.Unlock()

	return func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if prev != nil {
			logger = prev
		} else {
			logger = newLogger(os.Stderr, slog.LevelWarn)
		}
		slog.SetDefault(logger)
	}
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				t, ok := attr.Value.Any().(time.Time)
				if ok {
					return slog.String(slog.TimeKey, t.UTC().Format(time.RFC3339Nano))
				}
			}
			return attr
		},
	})
	return slog.New(handler)
}

func globalLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(os.Stderr, slog.LevelWarn)
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Pkg returns a logger tagged with package name.
func Pkg(pkg string) *slog.Logger {
	return globalLogger().With("pkg", pkg)
}

// Truncate returns a single-line preview of s of at most maxChars bytes.
func Truncate(s string, maxChars int) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	normalized := strings.ReplaceAll(trimmed, "\n", "\\n")
	if maxChars <= 0 || len(normalized) <= maxChars {
		return normalized
	}
	return normalized[:maxChars] + "... [truncated]"
}
