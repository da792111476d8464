package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func parseEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}
	return entry
}

// TestLogger_IncludesFields verifies fields and With attributes are present.
func TestLogger_IncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).With(F("profile", "full"))

	logger.Info(context.Background(), "component health set",
		F("component", "mailer"),
		F("healthy", false),
	)

	entry := parseEntry(t, &buf)
	if entry["msg"] != "component health set" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["profile"] != "full" {
		t.Errorf("profile = %v, want full", entry["profile"])
	}
	if entry["component"] != "mailer" {
		t.Errorf("component = %v, want mailer", entry["component"])
	}
	if entry["healthy"] != false {
		t.Errorf("healthy = %v, want false", entry["healthy"])
	}
	if _, ok := entry["timestamp"].(string); !ok {
		t.Error("expected timestamp field")
	}
}

// TestLogger_WithDoesNotMutateParent verifies derived loggers are independent.
func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithWriter("info", &buf)
	_ = parent.With(F("child", true))

	parent.Info(context.Background(), "parent")

	entry := parseEntry(t, &buf)
	if _, ok := entry["child"]; ok {
		t.Error("parent logger should not carry child fields")
	}
}

// TestLogger_ReservedKeysWin verifies fields cannot overwrite msg or level.
func TestLogger_ReservedKeysWin(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Warn(context.Background(), "real", F("msg", "fake"), F("level", "debug"))

	entry := parseEntry(t, &buf)
	if entry["msg"] != "real" || entry["level"] != "warn" {
		t.Errorf("got msg=%v level=%v, want real/warn", entry["msg"], entry["level"])
	}
}

// TestLogger_SecretsRedacted verifies sensitive keys are redacted.
func TestLogger_SecretsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).With(F("token", "abc123"))

	logger.Info(context.Background(), "request", F("password", "hunter2"))

	output := buf.String()
	if strings.Contains(output, "abc123") || strings.Contains(output, "hunter2") {
		t.Errorf("secrets should be redacted, got: %s", output)
	}
	if !strings.Contains(output, "[REDACTED]") {
		t.Errorf("expected redaction marker, got: %s", output)
	}
}

// TestLogger_LevelFiltering verifies log level filtering.
func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		logFn   func(Logger)
		written bool
	}{
		{"warn", func(l Logger) { l.Info(context.Background(), "x") }, false},
		{"warn", func(l Logger) { l.Warn(context.Background(), "x") }, true},
		{"warn", func(l Logger) { l.Error(context.Background(), "x") }, true},
		{"info", func(l Logger) { l.Debug(context.Background(), "x") }, false},
		{"debug", func(l Logger) { l.Debug(context.Background(), "x") }, true},
		{"error", func(l Logger) { l.Warn(context.Background(), "x") }, false},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		tc.logFn(NewLoggerWithWriter(tc.level, &buf))
		if got := buf.Len() > 0; got != tc.written {
			t.Errorf("level %s: written = %v, want %v", tc.level, got, tc.written)
		}
	}
}

// TestParseLogLevel verifies parsing and the info fallback.
func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestLogger_ConcurrentWritesAreLines verifies derived loggers share one lock.
func TestLogger_ConcurrentWritesAreLines(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base.With(F("worker", i)).Info(context.Background(), "tick")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("interleaved line %q: %v", line, err)
		}
	}
}

// TestNopLogger verifies the no-op logger is usable.
func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	if logger.With(F("a", 1)) == nil {
		t.Fatal("With should return non-nil logger")
	}
	logger.Error(context.Background(), "ignored")
}
