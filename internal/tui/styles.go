package tui

import "github.com/charmbracelet/lipgloss"

var (
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#FF4D4F"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = pendingStyle.Underline(true)
	typedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	bufferStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)
