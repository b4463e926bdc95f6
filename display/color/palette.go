package color

import (
	"fmt"
	imgcolor "image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default theme colours, dark background with Material accents.
const (
	DefaultBackground      = "#1e1e1e"
	DefaultForeground      = "#ffffff"
	DefaultAccent          = "#007acc"
	DefaultSecondary       = "#2d2d30"
	DefaultSuccess         = "#4caf50"
	DefaultWarning         = "#ff9800"
	DefaultDanger          = "#f44336"
	DefaultInfo            = "#2196f3"
	DefaultChartBackground = "#2d2d30"
	DefaultGrid            = "#404040"
)

// Palette is the resolved set of colours used by charts and the TUI chrome.
type Palette struct {
	Background      imgcolor.NRGBA
	Foreground      imgcolor.NRGBA
	Accent          imgcolor.NRGBA
	Secondary       imgcolor.NRGBA
	Success         imgcolor.NRGBA
	Warning         imgcolor.NRGBA
	Danger          imgcolor.NRGBA
	Info            imgcolor.NRGBA
	ChartBackground imgcolor.NRGBA
	Grid            imgcolor.NRGBA
}

// DefaultPalette returns the built-in dark palette.
func DefaultPalette() Palette {
	return Palette{
		Background:      MustHex(DefaultBackground),
		Foreground:      MustHex(DefaultForeground),
		Accent:          MustHex(DefaultAccent),
		Secondary:       MustHex(DefaultSecondary),
		Success:         MustHex(DefaultSuccess),
		Warning:         MustHex(DefaultWarning),
		Danger:          MustHex(DefaultDanger),
		Info:            MustHex(DefaultInfo),
		ChartBackground: MustHex(DefaultChartBackground),
		Grid:            MustHex(DefaultGrid),
	}
}

// ParseHex parses "#rrggbb" or "#rgb" (the leading # is optional) into an
// opaque colour.
func ParseHex(s string) (imgcolor.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return imgcolor.NRGBA{}, fmt.Errorf("color: invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return imgcolor.NRGBA{}, fmt.Errorf("color: invalid hex colour %q: %w", s, err)
	}
	return imgcolor.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for compile-time constants. It panics on bad input.
func MustHex(s string) imgcolor.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats a colour as "#rrggbb", ignoring alpha.
func Hex(c imgcolor.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lipgloss converts a palette colour for use in lipgloss styles.
func Lipgloss(c imgcolor.NRGBA) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}
