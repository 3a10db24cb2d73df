package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/ganttline/internal/gantt"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gantt.Mode != "week" {
		t.Errorf("expected mode week, got %s", cfg.Gantt.Mode)
	}
	if cfg.Gantt.Locale != "pt-BR" {
		t.Errorf("expected locale pt-BR, got %s", cfg.Gantt.Locale)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434" {
		t.Errorf("expected base_url http://localhost:11434, got %s", cfg.LLM.BaseURL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mode() != gantt.ModeWeek {
		t.Errorf("expected default mode, got %s", cfg.Mode())
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[gantt]
mode = "month"
locale = "en"
label_width = 30

[llm]
provider = "lmstudio"
model = "qwen2.5"
base_url = "http://localhost:1234/v1"

[storage]
db_path = "/tmp/test.db"

[server]
addr = "127.0.0.1:9000"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mode() != gantt.ModeMonth {
		t.Errorf("expected mode month, got %s", cfg.Mode())
	}
	if cfg.Locale() != gantt.LocaleEN {
		t.Errorf("expected locale en, got %s", cfg.Locale())
	}
	if cfg.Gantt.LabelWidth != 30 {
		t.Errorf("expected label_width 30, got %d", cfg.Gantt.LabelWidth)
	}
	if cfg.LLM.Provider != "lmstudio" {
		t.Errorf("expected provider lmstudio, got %s", cfg.LLM.Provider)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr 127.0.0.1:9000, got %s", cfg.Server.Addr)
	}
	// Not in file, should keep default
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[gantt\nmode ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[gantt]
mode = "day"
locale = "en"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("GANTTLINE_MODE", "month")
	t.Setenv("GANTTLINE_LLM_MODEL", "mistral")
	t.Setenv("GANTTLINE_SERVER_ADDR", ":9999")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Gantt.Mode != "month" {
		t.Errorf("expected mode month from env, got %s", cfg.Gantt.Mode)
	}
	// File value should be kept when no env override
	if cfg.Gantt.Locale != "en" {
		t.Errorf("expected locale en from file, got %s", cfg.Gantt.Locale)
	}
	// Env should override default
	if cfg.LLM.Model != "mistral" {
		t.Errorf("expected model mistral from env, got %s", cfg.LLM.Model)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr :9999 from env, got %s", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad mode", mutate: func(c *Config) { c.Gantt.Mode = "year" }, wantErr: "mode"},
		{name: "bad locale", mutate: func(c *Config) { c.Gantt.Locale = "fr" }, wantErr: "locale"},
		{name: "label too narrow", mutate: func(c *Config) { c.Gantt.LabelWidth = 2 }, wantErr: "label_width"},
		{name: "empty db path", mutate: func(c *Config) { c.Storage.DBPath = "" }, wantErr: "db_path"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "copilot" }, wantErr: "provider"},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %v, want one mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Gantt.Mode = "day"
	cfg.Gantt.LabelWidth = 16
	cfg.UI.Theme = "latte"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Mode() != gantt.ModeDay {
		t.Errorf("expected mode day, got %s", loaded.Mode())
	}
	if loaded.Gantt.LabelWidth != 16 {
		t.Errorf("expected label_width 16, got %d", loaded.Gantt.LabelWidth)
	}
	if loaded.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", loaded.UI.Theme)
	}
}
