package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// styleResponse colors the leading [OK] or [ERROR] tag of a response and
// leaves the rest untouched.
func styleResponse(resp string) string {
	tag, rest, _ := strings.Cut(resp, "\n")
	switch tag {
	case "[OK]":
		tag = okStyle.Render(tag)
	case "[ERROR]":
		tag = errorStyle.Render(tag)
	}
	return tag + "\n" + rest
}
