// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PanelStyles groups the styles needed to render a framed panel.
type PanelStyles struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Footer lipgloss.Style
}

// RenderPanel renders a framed panel with a title, body and optional footer.
func RenderPanel(title, body, footer string, styles PanelStyles) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render(footer))
	}

	return styles.Frame.Render(b.String())
}
