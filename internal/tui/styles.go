package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted).Width(24)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right).Width(16)

	SelectedFieldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	FieldStyle         = lipgloss.NewStyle()

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	HelpStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)
