package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/uimutate/internal/widget"
)

// renderPane draws one widget as a bordered box. Hidden widgets collapse to a
// single muted line; disabled ones keep their box but dim the content.
func renderPane(s widget.State, width int, focused bool) string {
	if width < 8 {
		width = 8
	}
	prefix := "  "
	if focused {
		prefix = "▶ "
	}
	if !s.Visible {
		line := prefix + s.Label + " (hidden)"
		return hiddenStyle.Render(padRight(ansi.Truncate(line, width, "…"), width))
	}

	border := colorBorder
	if focused {
		border = colorAccent
	}
	content := lipgloss.NewStyle().Foreground(colorText)
	state := "enabled"
	if !s.Enabled {
		content = content.Foreground(colorMuted).Faint(true)
		state = "disabled"
	}

	innerWidth := width - 4
	title := ansi.Truncate(strings.TrimSpace(prefix+s.Label), innerWidth, "…")
	body := ansi.Truncate(s.Name+" · "+state, innerWidth, "…")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)
	return box.Render(lipgloss.NewStyle().Bold(true).Foreground(colorText).Render(title) + "\n" + content.Render(body))
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
