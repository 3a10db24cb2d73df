package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/ganttline/internal/insights"
)

func TestBuildInsightLines(t *testing.T) {
	lines := BuildInsightLines([]insights.Insight{
		{Level: insights.LevelCritical, Title: "2 tarefas atrasadas", Description: "\"Design\" está 3 dias atrasada"},
		{Level: insights.LevelInfo, Title: "Resumo geral"},
	})

	want := []InsightLine{
		{Text: "✖ 2 tarefas atrasadas", Style: InsightLineCritical},
		{Text: "  \"Design\" está 3 dias atrasada", Style: InsightLineBody},
		{},
		{Text: "ℹ Resumo geral", Style: InsightLineInfo},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestRenderInsightLinesWraps(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	plain := lipgloss.NewStyle()
	styles := InsightStyles{Body: plain, Critical: plain, Warning: plain, Positive: plain, Info: plain}
	out := RenderInsightLines([]InsightLine{{Text: "uma frase longa que precisa quebrar"}}, 12, styles)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 12 {
			t.Errorf("line %q is %d cells wide", line, w)
		}
	}
	if lipgloss.Height(out) < 3 {
		t.Errorf("expected wrapped output, got %q", out)
	}
}

func TestRenderOverlayCentersPanel(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	base := strings.Repeat("..........\n", 4) + ".........."
	out := RenderOverlay(base, "ab\ncd", 10, 5, lipgloss.Color(""))
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[1] != "....ab...." || lines[2] != "....cd...." {
		t.Errorf("panel not centered: %q", lines)
	}
	if lines[0] != ".........." || lines[4] != ".........." {
		t.Errorf("base lines changed: %q", lines)
	}
}

func TestPadLinesWithBackground(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := PadLinesWithBackground("ab", 4, 2, lipgloss.Color(""))
	if out != "ab  \n    " {
		t.Errorf("got %q", out)
	}
}

func TestRenderFooterTruncatesDetail(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	plain := lipgloss.NewStyle()
	out := RenderFooter(FooterState{
		Width:       10,
		DetailStyle: plain,
		StatusStyle: plain,
		DetailLine:  "a very long detail line",
		StatusLine:  "ok",
		HelpLine:    "q quit",
	})
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if lines[0] != "a very lo…" {
		t.Errorf("detail = %q", lines[0])
	}
	if strings.TrimRight(lines[2], " ") != "q quit" {
		t.Errorf("help = %q", lines[2])
	}
}

func TestRenderPanel(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	plain := lipgloss.NewStyle()
	out := RenderPanel("Insights", "body", "esc close", PanelStyles{Frame: plain, Title: plain, Body: plain, Footer: plain})

	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if got := strings.Join(lines, "\n"); got != "Insights\n\nbody\n\nesc close" {
		t.Errorf("got %q", got)
	}
}
