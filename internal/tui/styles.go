package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#6c7086"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorMantle  lipgloss.Color = "#181825"
)

var (
	headerStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError)
	footerStyle       = lipgloss.NewStyle().Background(colorMantle)
	keyStyle          = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	hiddenStyle       = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)
