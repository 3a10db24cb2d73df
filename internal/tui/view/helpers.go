package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range height {
		lineWidth := lipgloss.Width(lines[i])
		if lineWidth >= width {
			continue
		}
		lines[i] += paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines[:height], "\n")
}

// RenderOverlay centers panel over base, which is first padded to
// width x height. Lines of base outside the panel are kept as they are.
func RenderOverlay(base, panel string, width, height int, panelBg lipgloss.Color) string {
	panelLines := strings.Split(panel, "\n")
	panelW := 0
	for _, line := range panelLines {
		panelW = max(panelW, lipgloss.Width(line))
	}
	if panel == "" || panelW == 0 {
		return base
	}
	panelW = min(panelW, width)
	panelH := min(len(panelLines), height)

	top := max((height-panelH)/2, 0)
	left := max((width-panelW)/2, 0)

	for i, line := range panelLines[:panelH] {
		lineW := lipgloss.Width(line)
		switch {
		case lineW > panelW:
			line = ansi.Cut(line, 0, panelW)
		case lineW < panelW:
			line += lipgloss.NewStyle().Background(panelBg).Render(strings.Repeat(" ", panelW-lineW))
		}
		panelLines[i] = applyBackgroundResets(line, panelBg) + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for row := top; row < top+panelH && row < len(baseLines); row++ {
		baseLine := baseLines[row]
		baseLines[row] = ansi.Cut(baseLine, 0, left) + panelLines[row-top] + ansi.Cut(baseLine, left+panelW, width)
	}
	return strings.Join(baseLines, "\n")
}

// applyBackgroundResets reapplies the panel background after ANSI resets so
// styled fragments inside the panel do not punch holes in it.
func applyBackgroundResets(line string, bg lipgloss.Color) string {
	seq := backgroundSeq(bg)
	if seq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+seq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+seq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+seq)
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
