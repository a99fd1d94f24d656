package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSecondary = lipgloss.Color("241") // Gray
	colorSuccess   = lipgloss.Color("42")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorError     = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	// Active transcript/editor line
	activeLineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	normalLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedLineStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			MarginTop(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	currentCommitStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess)

	branchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginTop(1)

	// Density bars
	barStyle = lipgloss.NewStyle().
			Foreground(colorError)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// PlayIcon returns the play-state indicator.
func PlayIcon(playing bool) string {
	if playing {
		return "▶"
	}
	return "⏸"
}
