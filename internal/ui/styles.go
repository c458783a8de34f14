// Package ui holds the terminal styles shared by the CLI and the capture loop.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Accent renders s in the accent colour.
func Accent(s string) string {
	return accentStyle.Render(s)
}

// Name renders a note name.
func Name(s string) string {
	return nameStyle.Render(s)
}

// Hint renders s as secondary text.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// Warn renders a non-fatal warning.
func Warn(s string) string {
	return warnStyle.Render(s)
}

// Error renders an error message.
func Error(s string) string {
	return errorStyle.Render(s)
}

// Success renders a confirmation.
func Success(s string) string {
	return successStyle.Render(s)
}

// Rule returns a horizontal separator of width n.
func Rule(n int) string {
	return hintStyle.Render(strings.Repeat("─", n))
}
