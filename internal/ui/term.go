package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Critical insights and overdue tasks
	colorCritical = color.New(color.FgRed, color.Bold)

	// Warnings: yellow to make them pop
	colorWarning = color.New(color.FgYellow)

	// Positive insights and completed work
	colorPositive = color.New(color.FgGreen)

	// Informational lines
	colorInfo = color.New(color.FgCyan)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatCritical(s string) string { return colorCritical.Sprint(s) }
func formatWarning(s string) string  { return colorWarning.Sprint(s) }
func formatPositive(s string) string { return colorPositive.Sprint(s) }
func formatInfo(s string) string     { return colorInfo.Sprint(s) }
func formatHeader(s string) string   { return colorHeader.Sprint(s) }
func formatMuted(s string) string    { return colorMuted.Sprint(s) }
