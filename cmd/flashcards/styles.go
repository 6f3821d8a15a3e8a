package main

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorQuestion = lipgloss.Color("#5FAFFF")
	colorAnswer   = lipgloss.Color("#00D787")
	colorWarning  = lipgloss.Color("#FFAF00")
	colorError    = lipgloss.Color("#FF5F87")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#AF87FF")
)

// cardWidth is the outer width of a rendered card.
const cardWidth = 72

var (
	styleTitle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarning  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleQuestion = lipgloss.NewStyle().Foreground(colorQuestion).Bold(true)
	styleAnswer   = lipgloss.NewStyle().Foreground(colorAnswer)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(cardWidth - 2)
)
