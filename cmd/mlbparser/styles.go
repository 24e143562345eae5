package main

import "github.com/charmbracelet/lipgloss"

// Styles for CLI output, following the teacher-adjacent echo package's
// palette convention: a bold header, green success, red error, and a
// plain info tone, applied directly through lipgloss rather than a
// wrapper package since this CLI only needs a handful of call sites.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#02BA84"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	tableHeader  = lipgloss.NewStyle().Bold(true).Underline(true)
)
