package log

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/userdeck/userdeck/internal/apierr"
)

// Logger wraps slog with the error-kind integration used across the client.
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger from config.
func New(config Config) *Logger {
	if config.Output == nil {
		config = DefaultConfig()
	}

	opts := &slog.HandlerOptions{Level: config.Level.ToSlogLevel()}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &Logger{slog: slog.New(handler), config: config}
}

// Default creates a logger with default configuration.
func Default() *Logger {
	return New(DefaultConfig())
}

// With returns a Logger with the given attributes on every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), config: l.config}
}

// WithError attaches error details. Normalized API errors contribute their
// kind and, for validation failures, the offending fields.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		args := []any{
			"error", apiErr.Message,
			"error_kind", string(apiErr.Kind),
		}
		if len(apiErr.Fields) > 0 {
			args = append(args, "fields", apiErr.Fields)
		}
		if apiErr.Cause != nil {
			args = append(args, "cause", apiErr.Cause.Error())
		}
		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefault sets the process-wide default logger.
func SetDefault(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = logger
}

// L returns the process-wide default logger, initializing it lazily.
func L() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	logger := Default()
	SetDefault(logger)
	return logger
}
