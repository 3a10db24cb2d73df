// Package theme provides color themes for Gantt charts.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a chart theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header rows, alternating rows
	BgSelection string `toml:"bg_selection"` // Selected row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Sublabels, grid lines
	Accent      string `toml:"accent"`       // Title, current period
	Bar         string `toml:"bar"`          // Tasks without a project color
	Done        string `toml:"done"`         // Completed tasks
	Overdue     string `toml:"overdue"`      // Overdue tasks
	Today       string `toml:"today"`        // Today marker
	Weekend     string `toml:"weekend"`      // Weekend columns in day mode
	Warning     string `toml:"warning"`      // Warnings in the insights panel
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.Done = coalesce(t.Done, t.Bar)
	t.Overdue = coalesce(t.Overdue, t.Warning, t.Bar)
	t.Today = coalesce(t.Today, t.Accent)
	t.Weekend = coalesce(t.Weekend, t.BgHighlight, t.Bg)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
