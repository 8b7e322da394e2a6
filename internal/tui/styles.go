package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	summaryLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(10)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Underline(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)

const (
	cursorMark   = ">"
	selectedMark = "✓"
)
