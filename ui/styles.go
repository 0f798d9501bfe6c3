package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#3B82F6")
	selfColor   = lipgloss.Color("#10B981")
	otherColor  = lipgloss.Color("#A78BFA")
	errorColor  = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#9CA3AF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	noticeStyle = lipgloss.NewStyle().
			Foreground(selfColor).
			Italic(true)

	ownAuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(selfColor)

	otherAuthorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(otherColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)
