package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func decode(t *testing.T, line string) LogEntry {
	t.Helper()
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Failed to decode %q: %v", line, err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"Error", ErrorLevel},
		{"invalid", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", Group("Family1"))
	logger.Error("shown too", Error(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	warn := decode(t, lines[0])
	if warn.Level != "WARN" || warn.Fields["group"] != "Family1" {
		t.Errorf("Unexpected warn entry: %+v", warn)
	}
	failed := decode(t, lines[1])
	if failed.Fields["error"] != "boom" {
		t.Errorf("Unexpected error entry: %+v", failed)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)
	child := root.With(RunID("r-1"), Component("analysis"))

	root.SetLevel(ErrorLevel)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("Expected child to follow root level, got %q", buf.String())
	}

	root.SetLevel(DebugLevel)
	child.Debug("visible", Analysis("kcore"), K(3))

	entry := decode(t, strings.TrimSpace(buf.String()))
	if entry.Fields["run_id"] != "r-1" || entry.Fields["analysis"] != "kcore" || entry.Fields["k"] != float64(3) {
		t.Errorf("Unexpected fields: %+v", entry.Fields)
	}
}

func TestJSONLogger_UnencodableField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("score", Float64("value", math.Inf(1)))

	if !strings.HasPrefix(buf.String(), "[INFO] score") {
		t.Errorf("Expected plain-text fallback, got %q", buf.String())
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	timer := StartTimer(logger, "analysis finished", Analysis("closeness"))
	if d := timer.End(Count(5)); d < 0 {
		t.Errorf("Negative duration %v", d)
	}

	entry := decode(t, strings.TrimSpace(buf.String()))
	if entry.Level != "DEBUG" || entry.Fields["latency"] == nil || entry.Fields["count"] != float64(5) {
		t.Errorf("Unexpected entry: %+v", entry)
	}

	buf.Reset()
	StartTimer(logger, "analysis failed").EndError(errors.New("no convergence"))
	entry = decode(t, strings.TrimSpace(buf.String()))
	if entry.Level != "ERROR" || entry.Fields["error"] != "no convergence" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("GRAPHSTATS_TEST_LEVEL", "error")
	var buf bytes.Buffer
	logger := NewFromEnv(&buf, "GRAPHSTATS_TEST_LEVEL", InfoLevel)
	if got := logger.GetLevel(); got != ErrorLevel {
		t.Errorf("Level = %v, want ERROR", got)
	}
	logger.Error("boom")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected entry in the given writer, got %q", buf.String())
	}

	t.Setenv("GRAPHSTATS_TEST_BLANK", "  ")
	if got := NewFromEnv(&buf, "GRAPHSTATS_TEST_BLANK", WarnLevel).GetLevel(); got != WarnLevel {
		t.Errorf("Level = %v, want WARN", got)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	if logger.With(Count(1)) == nil {
		t.Error("With returned nil")
	}
}
