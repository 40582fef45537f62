package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/untoldecay/tickets/internal/types"
)

// Palette
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "63", Dark: "105"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "166", Dark: "214"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
)

var (
	IDStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	openStyle       = lipgloss.NewStyle().Foreground(ColorPass)
	inProgressStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	closedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
)

// RenderStatus renders a ticket status with its conventional color.
func RenderStatus(s types.Status) string {
	if !ShouldUseColor() {
		return string(s)
	}
	switch s {
	case types.StatusOpen:
		return openStyle.Render(string(s))
	case types.StatusInProgress:
		return inProgressStyle.Render(string(s))
	case types.StatusClosed:
		return closedStyle.Render(string(s))
	}
	return string(s)
}

// RenderID renders a ticket id.
func RenderID(id string) string {
	if !ShouldUseColor() {
		return id
	}
	return IDStyle.Render(id)
}
