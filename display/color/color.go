// Package color resolves the dashboard palette and decides whether terminal
// output may use colour at all.
//
// Colour is disabled when NO_COLOR is set (https://no-color.org/) or stdout
// is not a terminal; lipgloss is then switched to the Ascii profile so styled
// renders produce plain text. Chart frames are unaffected: they are images.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ShouldDisableColor reports whether styled text should be emitted without
// ANSI colour sequences.
func ShouldDisableColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Apply configures the global lipgloss renderer and returns whether colour is
// enabled.
func Apply() bool {
	if ShouldDisableColor() {
		ForceDisable()
		return false
	}
	return true
}

// ForceDisable unconditionally switches lipgloss to the Ascii profile.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
