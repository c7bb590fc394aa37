package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Green   = lipgloss.Color("#10B981")
	Amber   = lipgloss.Color("#F59E0B")
	Red     = lipgloss.Color("#EF4444")
	Gray    = lipgloss.Color("#6B7280")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(Gray).
		Italic(true)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	WarningText = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red)

	// Pager chrome
	PagerFooter = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true)
)
