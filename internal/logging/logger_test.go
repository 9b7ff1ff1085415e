package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("decision made", slog.String("category", "audio"), slog.Float64("confidence", 0.95))

	line := buf.String()
	if !strings.Contains(line, "INF decision made") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "category=audio") || !strings.Contains(line, "confidence=0.95") {
		t.Errorf("attributes missing: %q", line)
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("probe")
	if !strings.Contains(buf.String(), `"msg":"probe"`) {
		t.Errorf("expected JSON log line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Error("warn line should pass")
	}
}

func TestWithComponentNilLogger(t *testing.T) {
	logger := WithComponent(nil, "fusion")
	// Must not panic and must swallow output.
	logger.Info("noop")
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithGroup("fusion").Info("ranked", slog.Int("candidates", 3))
	if !strings.Contains(buf.String(), "fusion.candidates=3") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}
