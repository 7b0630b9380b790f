package tui

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"}).
			Bold(true)

	outputStyle = lipgloss.NewStyle()

	// Command failures.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)
