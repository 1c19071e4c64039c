package tui

import (
	"github.com/DachengChen/askdb/chart"
	"github.com/charmbracelet/lipgloss"
)

// Simple palette inspired by standard terminal dark themes, with the
// chart indigo as the accent.
var (
	ColorPrimary   = lipgloss.Color("255") // White
	ColorSecondary = lipgloss.Color("240") // Dark Gray
	ColorAccent    = chart.Palette[0]      // Indigo
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorDim       = lipgloss.Color("240") // Dimmed text

	// Only used for highlighting lines or headers
	ColorHighlightBg = lipgloss.Color("236")
)

// Shared styles - minimal and clean
var (
	StyleNormal = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleDimmed = lipgloss.NewStyle().Foreground(ColorDim)
	StyleBold   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary)

	StyleBorderFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginBottom(1)
	StylePrompt = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	// Sidebar item (selected)
	StyleListItemActive = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Background(ColorHighlightBg).
				Bold(true)

	// Chat bubbles
	StyleRoleLabel = lipgloss.NewStyle().
			Foreground(ColorDim).
			Bold(true)

	StyleUserBubble = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorAccent).
			Padding(0, 1)

	StyleAssistantBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary).
				Padding(0, 1)

	StyleErrorBox = StyleAssistantBox.
			BorderForeground(ColorError)

	// Run button
	StyleButton = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorAccent).
			Padding(0, 1).
			Bold(true)

	StyleButtonBusy = lipgloss.NewStyle().
			Foreground(ColorDim).
			Background(ColorHighlightBg).
			Padding(0, 1)

	StyleStatusBar = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	StyleHelpKey = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorDim)
)
