// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/ganttline/internal/gantt"
)

// Config holds the application configuration.
type Config struct {
	Gantt   GanttConfig   `toml:"gantt"`
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
	Server  ServerConfig  `toml:"server"`
}

// GanttConfig holds chart defaults.
type GanttConfig struct {
	Mode       string `toml:"mode"`        // "day", "week", "month"
	Locale     string `toml:"locale"`      // "pt-BR", "en"
	LabelWidth int    `toml:"label_width"` // task name column in terminal charts
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", "openai"
	Model    string `toml:"model"`    // e.g., "llama3.1"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Gantt: GanttConfig{
			Mode:       string(gantt.ModeWeek),
			Locale:     string(gantt.DefaultLocale),
			LabelWidth: 24,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.1",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ganttline.db"
	}
	return filepath.Join(home, ".local", "share", "ganttline", "ganttline.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ganttline", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"GANTTLINE_MODE", &cfg.Gantt.Mode},
		{"GANTTLINE_LOCALE", &cfg.Gantt.Locale},
		{"GANTTLINE_DB_PATH", &cfg.Storage.DBPath},
		{"GANTTLINE_LLM_PROVIDER", &cfg.LLM.Provider},
		{"GANTTLINE_LLM_MODEL", &cfg.LLM.Model},
		{"GANTTLINE_LLM_BASE_URL", &cfg.LLM.BaseURL},
		{"GANTTLINE_UI_THEME", &cfg.UI.Theme},
		{"GANTTLINE_SERVER_ADDR", &cfg.Server.Addr},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validProviders = map[string]bool{
	"ollama":   true,
	"lmstudio": true,
	"openai":   true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := gantt.ParseMode(c.Gantt.Mode); err != nil {
		return err
	}
	if _, err := gantt.ParseLocale(c.Gantt.Locale); err != nil {
		return err
	}
	if c.Gantt.LabelWidth < 4 || c.Gantt.LabelWidth > 80 {
		return fmt.Errorf("label_width must be between 4 and 80, got %d", c.Gantt.LabelWidth)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validProviders[strings.ToLower(c.LLM.Provider)] {
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	return nil
}

// Mode returns the configured default zoom mode.
func (c *Config) Mode() gantt.Mode {
	m, err := gantt.ParseMode(c.Gantt.Mode)
	if err != nil {
		return gantt.ModeWeek
	}
	return m
}

// Locale returns the configured label locale.
func (c *Config) Locale() gantt.Locale {
	l, err := gantt.ParseLocale(c.Gantt.Locale)
	if err != nil {
		return gantt.DefaultLocale
	}
	return l
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
