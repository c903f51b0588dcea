// Package logging provides structured logging for the fireworks show.
// It wraps Go's standard slog package with a JSON handler, an env-driven
// level and per-session correlation IDs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	uuid "github.com/satori/go.uuid"
)

// LevelEnvVar selects the minimum log level.
const LevelEnvVar = "FIREWORKS_LOG_LEVEL"

// Logger wraps slog.Logger to provide application-specific logging functionality
// with correlation ID support.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger writing JSON to stdout.
// The log level is controlled via FIREWORKS_LOG_LEVEL.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a Logger writing JSON to w. Terminal
// renderers own stdout, so they log to a file instead.
func NewLoggerWithWriter(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: getLogLevelFromEnv(),
	})
	return &Logger{slog.New(handler)}
}

// NewDiscardLogger returns a Logger that drops every record.
func NewDiscardLogger() *Logger {
	return NewLoggerWithWriter(io.Discard)
}

// LogWithContext logs a message with automatic correlation ID extraction from context.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		args = append(args, "correlation_id", correlationID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type correlationIDKey struct{}

// WithCorrelationID adds a correlation ID to the context.
// If no correlation ID is provided, a new one will be generated.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID extracts the correlation ID from the context.
// Returns empty string if no correlation ID is present.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a new random (version 4) UUID.
func GenerateCorrelationID() string {
	return uuid.NewV4().String()
}

func getLogLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnvVar)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
