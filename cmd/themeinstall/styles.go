package main

import "github.com/charmbracelet/lipgloss"

const (
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorHighlight = lipgloss.Color("#3B82F6")
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	labelStyle = lipgloss.NewStyle().
			Bold(true)
)
