package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Enazzzz/SysIntel/display/color"
)

// Color palette for the monitoring dashboard chrome. Chart colours come from
// the configured theme instead.
const (
	colorPrimary   = lipgloss.Color(color.DefaultAccent)
	colorSecondary = lipgloss.Color(color.DefaultInfo)
	colorWarning   = lipgloss.Color(color.DefaultWarning)
	colorDanger    = lipgloss.Color(color.DefaultDanger)
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles used throughout the TUI.
var (
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleSummary     lipgloss.Style
	styleLabel       lipgloss.Style
	styleStatus      lipgloss.Style
	styleWarning     lipgloss.Style
	styleError       lipgloss.Style
)

func init() {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted)

	styleSummary = lipgloss.NewStyle().
		Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSecondary)

	styleStatus = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	styleWarning = lipgloss.NewStyle().
		Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorDanger)
}
