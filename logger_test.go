package retroflow

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Light smoke tests ensuring exported logger APIs do not panic and remain
// callable. If richer logging behavior (sinks, filtering) is added later,
// expand assertions here.
func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
}

func TestSimpleLoggerReusability(t *testing.T) {
	logger := NewSimpleLogger()
	for i := 0; i < 5; i++ {
		logger.Info("loop message")
	}
}

func TestSlogLoggerForwardsAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogLogger(slog.New(handler))

	logger.Debug("call finished", "endpoint", "api.example.com/users", "outcome", "success")

	out := buf.String()
	if !strings.Contains(out, "call finished") {
		t.Errorf("expected the message in output, got %q", out)
	}
	if !strings.Contains(out, "endpoint=api.example.com/users") {
		t.Errorf("expected key-value attributes in output, got %q", out)
	}
}

func TestDefaultDebugConfig(t *testing.T) {
	cfg := DefaultDebugConfig()

	if cfg.Enabled {
		t.Error("debug must be off by default")
	}
	if !cfg.LogCalls || !cfg.LogMock || !cfg.LogObservers {
		t.Error("all log areas must be on by default")
	}
	if cfg.RequestIDGen == nil {
		t.Fatal("expected a default request ID generator")
	}
	if cfg.RequestIDGen() == "" {
		t.Error("expected non-empty request IDs")
	}
}
