// Package config provides configuration parsing for SysIntel.
package config

import (
	"errors"
	"fmt"
	imgcolor "image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Enazzzz/SysIntel/display/chart"
	"github.com/Enazzzz/SysIntel/display/color"
)

// Sampling interval bounds and presets, in milliseconds.
const (
	MinIntervalMS     = 100
	MaxIntervalMS     = 10000
	DefaultIntervalMS = 500
)

// IntervalPresets are the sampling intervals the TUI steps through.
var IntervalPresets = []int{100, 200, 500, 2000, 5000, 10000}

// Temperature units.
const (
	Celsius    = "C"
	Fahrenheit = "F"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the SysIntel configuration.
type Config struct {
	// Sampling holds collection settings.
	Sampling SamplingConfig `yaml:"sampling"`

	// Display holds chart and TUI rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Log holds diagnostic logging settings.
	Log LogConfig `yaml:"log"`
}

// SamplingConfig holds collection settings.
type SamplingConfig struct {
	// IntervalMS is the time between samples in milliseconds (100-10000).
	IntervalMS int `yaml:"interval_ms"`
}

// DisplayConfig holds chart and TUI rendering settings.
type DisplayConfig struct {
	// VisibleSeconds is the time span each chart shows.
	VisibleSeconds float64 `yaml:"visible_seconds"`
	// Smoothing is the line smoothing mode: none, average or round.
	Smoothing chart.Smoothing `yaml:"smoothing"`
	// TempUnit is "C" or "F".
	TempUnit string `yaml:"temp_unit"`
	// RenderScale is the supersampling factor for terminal chart frames (1-8).
	RenderScale int `yaml:"render_scale"`
	// Protocol forces an image protocol: auto, kitty, iterm2 or unicode.
	Protocol string `yaml:"protocol"`
	// Theme holds the colour palette as hex strings.
	Theme ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds the colour palette as "#rrggbb" strings.
type ThemeConfig struct {
	Background      string `yaml:"background"`
	Foreground      string `yaml:"foreground"`
	Accent          string `yaml:"accent"`
	Secondary       string `yaml:"secondary"`
	Success         string `yaml:"success"`
	Warning         string `yaml:"warning"`
	Danger          string `yaml:"danger"`
	Info            string `yaml:"info"`
	ChartBackground string `yaml:"chart_background"`
	Grid            string `yaml:"grid"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// File is the log destination. Empty discards logs so the TUI owns the terminal.
	File string `yaml:"file"`
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sampling: SamplingConfig{
			IntervalMS: DefaultIntervalMS,
		},
		Display: DisplayConfig{
			VisibleSeconds: 60,
			Smoothing:      chart.SmoothRound,
			TempUnit:       Celsius,
			RenderScale:    2,
			Protocol:       "auto",
			Theme: ThemeConfig{
				Background:      color.DefaultBackground,
				Foreground:      color.DefaultForeground,
				Accent:          color.DefaultAccent,
				Secondary:       color.DefaultSecondary,
				Success:         color.DefaultSuccess,
				Warning:         color.DefaultWarning,
				Danger:          color.DefaultDanger,
				Info:            color.DefaultInfo,
				ChartBackground: color.DefaultChartBackground,
				Grid:            color.DefaultGrid,
			},
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// Interval returns the sampling interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Sampling.IntervalMS) * time.Millisecond
}

// DefaultPath returns $XDG_CONFIG_HOME/sysintel/config.yaml, falling back to
// ~/.config/sysintel/config.yaml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sysintel", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sysintel", "config.yaml")
}

// Load reads the configuration from DefaultPath and applies environment
// overrides.
func Load() (*Config, error) {
	return LoadConfig(DefaultPath())
}

// LoadConfig loads configuration from a YAML file, merging with defaults, and
// applies environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from SYSINTEL_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("SYSINTEL_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SYSINTEL_INTERVAL_MS: %w", err)
		}
		c.Sampling.IntervalMS = ms
	}
	if v := os.Getenv("SYSINTEL_SMOOTHING"); v != "" {
		mode, err := chart.ParseSmoothing(v)
		if err != nil {
			return fmt.Errorf("config: SYSINTEL_SMOOTHING: %w", err)
		}
		c.Display.Smoothing = mode
	}
	if v := os.Getenv("SYSINTEL_TEMP_UNIT"); v != "" {
		c.Display.TempUnit = strings.ToUpper(v)
	}
	return nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	if c.Sampling.IntervalMS < MinIntervalMS || c.Sampling.IntervalMS > MaxIntervalMS {
		return fmt.Errorf("%w: sampling.interval_ms must be between %d and %d, got %d",
			ErrInvalid, MinIntervalMS, MaxIntervalMS, c.Sampling.IntervalMS)
	}

	if c.Display.VisibleSeconds <= 0 {
		return fmt.Errorf("%w: display.visible_seconds must be positive, got %v", ErrInvalid, c.Display.VisibleSeconds)
	}
	if _, err := c.Display.Smoothing.MarshalText(); err != nil {
		return fmt.Errorf("%w: display.smoothing: %v", ErrInvalid, err)
	}
	if c.Display.TempUnit != Celsius && c.Display.TempUnit != Fahrenheit {
		return fmt.Errorf("%w: display.temp_unit must be 'C' or 'F', got %q", ErrInvalid, c.Display.TempUnit)
	}
	if c.Display.RenderScale < 1 || c.Display.RenderScale > 8 {
		return fmt.Errorf("%w: display.render_scale must be between 1 and 8, got %d", ErrInvalid, c.Display.RenderScale)
	}
	switch strings.ToLower(c.Display.Protocol) {
	case "", "auto", "kitty", "iterm2", "unicode":
	default:
		return fmt.Errorf("%w: display.protocol must be auto, kitty, iterm2 or unicode, got %q", ErrInvalid, c.Display.Protocol)
	}
	if _, err := c.Display.Theme.Palette(); err != nil {
		return fmt.Errorf("%w: display.theme: %v", ErrInvalid, err)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", ErrInvalid, c.Log.Level)
	}

	return nil
}

// Palette resolves the theme's hex strings.
func (t ThemeConfig) Palette() (color.Palette, error) {
	var p color.Palette
	fields := []struct {
		name string
		hex  string
		dst  *imgcolor.NRGBA
	}{
		{"background", t.Background, &p.Background},
		{"foreground", t.Foreground, &p.Foreground},
		{"accent", t.Accent, &p.Accent},
		{"secondary", t.Secondary, &p.Secondary},
		{"success", t.Success, &p.Success},
		{"warning", t.Warning, &p.Warning},
		{"danger", t.Danger, &p.Danger},
		{"info", t.Info, &p.Info},
		{"chart_background", t.ChartBackground, &p.ChartBackground},
		{"grid", t.Grid, &p.Grid},
	}
	for _, f := range fields {
		c, err := color.ParseHex(f.hex)
		if err != nil {
			return color.Palette{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// SaveConfig writes configuration to a YAML file atomically.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("config: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: rename to %s: %w", path, err)
	}
	return nil
}

// StepInterval returns the preset after ms when dir is positive, or before it
// when dir is negative. Stepping past either end stays on the end preset.
func StepInterval(ms, dir int) int {
	if dir > 0 {
		for _, p := range IntervalPresets {
			if p > ms {
				return p
			}
		}
		return IntervalPresets[len(IntervalPresets)-1]
	}
	for i := len(IntervalPresets) - 1; i >= 0; i-- {
		if IntervalPresets[i] < ms {
			return IntervalPresets[i]
		}
	}
	return IntervalPresets[0]
}
