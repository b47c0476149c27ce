package ui

import "github.com/charmbracelet/lipgloss"

// Colors for status output. lipgloss drops them when stdout is not a terminal.
const (
	ColorStatusCreated = lipgloss.Color("40")  // Green
	ColorStatusExists  = lipgloss.Color("244") // Dim gray
	ColorStatusPlanned = lipgloss.Color("39")  // Blue
	ColorStatusSkipped = lipgloss.Color("214") // Orange/Yellow
	ColorStatusFailed  = lipgloss.Color("196") // Red
	ColorSummary       = lipgloss.Color("62")  // Purple
)

var (
	StatusStyleCreated = lipgloss.NewStyle().Foreground(ColorStatusCreated)
	StatusStyleExists  = lipgloss.NewStyle().Foreground(ColorStatusExists)
	StatusStylePlanned = lipgloss.NewStyle().Foreground(ColorStatusPlanned)
	StatusStyleSkipped = lipgloss.NewStyle().Foreground(ColorStatusSkipped)
	StatusStyleFailed  = lipgloss.NewStyle().Foreground(ColorStatusFailed)
	StatusStylePending = lipgloss.NewStyle()

	SummaryStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSummary)
)
