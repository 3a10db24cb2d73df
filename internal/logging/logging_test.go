package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSetup_Output(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, closeFn, err := Setup(Options{Output: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer func() { _ = closeFn() }()

	logger.Debug("hidden")
	logger.Info("layout computed", "mode", "week", "tasks", 3)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "layout computed" || entry["mode"] != "week" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetup_Debug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Chdir(t.TempDir())

	logger, closeFn, err := Setup(Options{Debug: true})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("key press", "key", "w")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(".", DebugLogPath))
	if err != nil {
		t.Fatalf("reading debug log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"key":"w"`)) {
		t.Errorf("debug entry missing from %q", data)
	}
}

func TestSetup_Discard(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, _, err := Setup(Options{})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}
