package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - RF on, success
	ErrorColor   = lipgloss.Color("#FF5555") // Red - faults, errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - RF off, warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles
var (
	// TitleStyle is for panel titles (e.g., "SSG-6000RC  11902250021")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// LabelStyle is for field labels (e.g., "Frequency:")
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(13)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// OnStyle marks an enabled RF output
	OnStyle = lipgloss.NewStyle().
		Foreground(SuccessColor).
		Bold(true)

	// OffStyle marks a disabled RF output
	OffStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// FaultStyle is for active fault flags
	FaultStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// OKStyle is for the no-faults indicator
	OKStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	// MutedStyle is for secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ErrorTitleStyle is for error banner text
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// PanelStyle returns the bordered box style used by status and capability
// panels.
func PanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2). // Account for border characters
		Padding(0, 2)
}

// ErrorBoxStyle returns the bordered box style for error output.
func ErrorBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ErrorColor).
		Width(width - 2).
		Padding(0, 2)
}
