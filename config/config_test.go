package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Enazzzz/SysIntel/display/chart"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sampling.IntervalMS != 500 {
		t.Errorf("expected IntervalMS=500, got %d", cfg.Sampling.IntervalMS)
	}
	if cfg.Interval() != 500*time.Millisecond {
		t.Errorf("expected Interval()=500ms, got %v", cfg.Interval())
	}
	if cfg.Display.VisibleSeconds != 60 {
		t.Errorf("expected VisibleSeconds=60, got %v", cfg.Display.VisibleSeconds)
	}
	if cfg.Display.Smoothing != chart.SmoothRound {
		t.Errorf("expected Smoothing=round, got %v", cfg.Display.Smoothing)
	}
	if cfg.Display.TempUnit != Celsius {
		t.Errorf("expected TempUnit=C, got %s", cfg.Display.TempUnit)
	}
	if cfg.Display.Theme.Grid != "#404040" {
		t.Errorf("expected Theme.Grid=#404040, got %s", cfg.Display.Theme.Grid)
	}
	if cfg.Log.File != "" {
		t.Errorf("expected no log file by default, got %s", cfg.Log.File)
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid, got error: %v", err)
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error for non-existent file: %v", err)
	}
	if cfg.Sampling.IntervalMS != DefaultIntervalMS {
		t.Errorf("expected default IntervalMS, got %d", cfg.Sampling.IntervalMS)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error for empty path: %v", err)
	}
	if cfg.Display.VisibleSeconds != 60 {
		t.Errorf("expected default VisibleSeconds=60, got %v", cfg.Display.VisibleSeconds)
	}
}

func TestLoadConfigPartialMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sampling:
  interval_ms: 2000
display:
  smoothing: average
  temp_unit: F
  theme:
    accent: "#ff00ff"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Sampling.IntervalMS != 2000 {
		t.Errorf("expected IntervalMS=2000, got %d", cfg.Sampling.IntervalMS)
	}
	if cfg.Display.Smoothing != chart.SmoothAverage {
		t.Errorf("expected Smoothing=average, got %v", cfg.Display.Smoothing)
	}
	if cfg.Display.TempUnit != Fahrenheit {
		t.Errorf("expected TempUnit=F, got %s", cfg.Display.TempUnit)
	}
	if cfg.Display.Theme.Accent != "#ff00ff" {
		t.Errorf("expected Accent=#ff00ff, got %s", cfg.Display.Theme.Accent)
	}
	// Untouched fields keep their defaults.
	if cfg.Display.VisibleSeconds != 60 || cfg.Display.Theme.Grid != "#404040" {
		t.Errorf("defaults lost during merge: %+v", cfg.Display)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("display: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigUnknownSmoothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("display:\n  smoothing: spline\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown smoothing mode")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SYSINTEL_INTERVAL_MS", "200")
	t.Setenv("SYSINTEL_SMOOTHING", "none")
	t.Setenv("SYSINTEL_TEMP_UNIT", "f")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Sampling.IntervalMS != 200 {
		t.Errorf("expected IntervalMS=200, got %d", cfg.Sampling.IntervalMS)
	}
	if cfg.Display.Smoothing != chart.SmoothNone {
		t.Errorf("expected Smoothing=none, got %v", cfg.Display.Smoothing)
	}
	if cfg.Display.TempUnit != Fahrenheit {
		t.Errorf("expected TempUnit=F, got %s", cfg.Display.TempUnit)
	}
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("SYSINTEL_INTERVAL_MS", "fast")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error for non-numeric SYSINTEL_INTERVAL_MS")
	}
}

func TestDefaultPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/sysintel/config.yaml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"interval too short", func(c *Config) { c.Sampling.IntervalMS = 50 }},
		{"interval too long", func(c *Config) { c.Sampling.IntervalMS = 10001 }},
		{"zero visible seconds", func(c *Config) { c.Display.VisibleSeconds = 0 }},
		{"unknown smoothing", func(c *Config) { c.Display.Smoothing = chart.Smoothing(7) }},
		{"bad temp unit", func(c *Config) { c.Display.TempUnit = "K" }},
		{"render scale zero", func(c *Config) { c.Display.RenderScale = 0 }},
		{"render scale too big", func(c *Config) { c.Display.RenderScale = 9 }},
		{"unknown protocol", func(c *Config) { c.Display.Protocol = "sixel" }},
		{"bad colour", func(c *Config) { c.Display.Theme.Danger = "red" }},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	for _, ms := range []int{MinIntervalMS, MaxIntervalMS} {
		cfg := DefaultConfig()
		cfg.Sampling.IntervalMS = ms
		if err := cfg.Validate(); err != nil {
			t.Errorf("interval %d should be valid: %v", ms, err)
		}
	}
}

func TestThemePalette(t *testing.T) {
	p, err := DefaultConfig().Display.Theme.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p.Danger.R != 0xf4 || p.Danger.G != 0x43 || p.Danger.B != 0x36 {
		t.Errorf("Danger = %v, want #f44336", p.Danger)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Sampling.IntervalMS = 5000
	cfg.Display.Smoothing = chart.SmoothNone
	cfg.Display.TempUnit = Fahrenheit

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Sampling.IntervalMS != 5000 {
		t.Errorf("IntervalMS = %d, want 5000", loaded.Sampling.IntervalMS)
	}
	if loaded.Display.Smoothing != chart.SmoothNone {
		t.Errorf("Smoothing = %v, want none", loaded.Display.Smoothing)
	}
	if loaded.Display.TempUnit != Fahrenheit {
		t.Errorf("TempUnit = %s, want F", loaded.Display.TempUnit)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only config.yaml", len(entries))
	}
}

func TestStepInterval(t *testing.T) {
	tests := []struct {
		ms, dir, want int
	}{
		{500, 1, 2000},
		{500, -1, 200},
		{100, -1, 100},
		{10000, 1, 10000},
		{750, 1, 2000},
		{750, -1, 500},
		{50, 1, 100},
	}
	for _, tt := range tests {
		if got := StepInterval(tt.ms, tt.dir); got != tt.want {
			t.Errorf("StepInterval(%d, %d) = %d, want %d", tt.ms, tt.dir, got, tt.want)
		}
	}
}
