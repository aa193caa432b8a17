package retroflow

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger is the minimal structured logging surface used for debug output.
// keysAndValues are alternating keys and values, slog style.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, keysAndValues ...any) { s.l.Debug(msg, keysAndValues...) }
func (s *slogLogger) Info(msg string, keysAndValues ...any)  { s.l.Info(msg, keysAndValues...) }
func (s *slogLogger) Warn(msg string, keysAndValues ...any)  { s.l.Warn(msg, keysAndValues...) }
func (s *slogLogger) Error(msg string, keysAndValues ...any) { s.l.Error(msg, keysAndValues...) }

// NewSlogLogger wraps an existing *slog.Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

// NewSimpleLogger returns a text logger on stderr at debug level, suitable
// for development use with WithDebug.
func NewSimpleLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &slogLogger{l: slog.New(handler)}
}

// DebugConfig controls which call lifecycle events are logged.
type DebugConfig struct {
	Enabled      bool
	LogCalls     bool
	LogMock      bool
	LogObservers bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a config with all areas enabled and UUID request
// IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogCalls:     true,
		LogMock:      true,
		LogObservers: true,
		RequestIDGen: defaultRequestID,
	}
}

func defaultRequestID() string {
	return uuid.NewString()
}
