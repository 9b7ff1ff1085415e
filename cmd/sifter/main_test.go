package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "sifter.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
review_log = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), filepath.Join(base, "review", "queue.jsonl"))
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SIFTER_LLM_API_KEY", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(output, "sifter") {
		t.Errorf("output = %q", output)
	}
}

func TestQueueListEmpty(t *testing.T) {
	cfgPath := writeTestConfig(t)
	output, err := runCommand(t, "--config", cfgPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(output, "Review queue is empty") {
		t.Errorf("output = %q", output)
	}
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", cfgPath, "queue", "list", "--status", "bogus")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Errorf("output = %q", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestClassifyWithoutAPIKey(t *testing.T) {
	cfgPath := writeTestConfig(t)
	audio := filepath.Join(t.TempDir(), "recording.wav")
	if err := os.WriteFile(audio, []byte("riff"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}

	output, err := runCommand(t, "--config", cfgPath, "classify", audio)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !strings.Contains(output, "audio") {
		t.Errorf("output = %q, want audio classification", output)
	}
	if !strings.Contains(output, "queued:     no") {
		t.Errorf("output = %q, want not queued", output)
	}
}

func TestClassifyJSONOutput(t *testing.T) {
	cfgPath := writeTestConfig(t)
	audio := filepath.Join(t.TempDir(), "recording.wav")
	if err := os.WriteFile(audio, []byte("riff"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}

	output, err := runCommand(t, "--config", cfgPath, "classify", "--json", audio)
	if err != nil {
		t.Fatalf("classify --json: %v", err)
	}
	if !strings.Contains(output, `"category": "audio"`) {
		t.Errorf("output = %q, want JSON category", output)
	}
}
