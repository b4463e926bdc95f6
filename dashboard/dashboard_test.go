package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/display/chart"
	"github.com/Enazzzz/SysIntel/display/color"
)

func testSettings() Settings {
	return Settings{
		VisibleSeconds: 5,
		Interval:       time.Second,
		Smoothing:      chart.SmoothNone,
		TempUnit:       config.Celsius,
		Palette:        color.DefaultPalette(),
	}
}

func newTestDashboard() *Dashboard {
	s := testSettings()
	return New(s, DefaultGraphs(s.Palette), nil)
}

func TestSettingsFrom(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := SettingsFrom(cfg)
	if err != nil {
		t.Fatalf("SettingsFrom: %v", err)
	}
	if s.Interval != 500*time.Millisecond {
		t.Errorf("Interval = %v, want 500ms", s.Interval)
	}
	if s.Capacity() != 120 {
		t.Errorf("Capacity() = %d, want 120", s.Capacity())
	}
	if s.Palette.Accent != color.MustHex(color.DefaultAccent) {
		t.Errorf("Palette.Accent = %v", s.Palette.Accent)
	}

	cfg.Display.Theme.Grid = "bogus"
	if _, err := SettingsFrom(cfg); err == nil {
		t.Error("expected error for bad theme colour")
	}
}

func TestDefaultGraphs(t *testing.T) {
	p := color.DefaultPalette()
	graphs := DefaultGraphs(p)

	wantIDs := []string{"cpu", "memory", "gpu", "temperature", "fan"}
	if len(graphs) != len(wantIDs) {
		t.Fatalf("len(DefaultGraphs) = %d, want %d", len(graphs), len(wantIDs))
	}
	for i, id := range wantIDs {
		if graphs[i].ID != id {
			t.Errorf("graphs[%d].ID = %q, want %q", i, graphs[i].ID, id)
		}
	}

	temp := graphs[3]
	if len(temp.Series) != 2 || !temp.Legend {
		t.Fatalf("temperature graph = %+v, want two series with legend", temp)
	}
	if temp.Series[0].Color != p.Danger || temp.Series[1].Color != p.Warning {
		t.Error("temperature series colours should be danger then warning")
	}
	if temp.Series[0].Label != "CPU Temp" || temp.Series[1].Label != "GPU Temp" {
		t.Errorf("labels = %q, %q", temp.Series[0].Label, temp.Series[1].Label)
	}
	if graphs[4].Series[0].YMax != 5000 {
		t.Errorf("fan YMax = %v, want 5000", graphs[4].Series[0].YMax)
	}
}

func TestNewSizesWindows(t *testing.T) {
	d := newTestDashboard()

	if got := len(d.Metrics()); got != len(collectors.AllMetrics) {
		t.Errorf("Metrics() has %d entries, want %d", got, len(collectors.AllMetrics))
	}
	d.Append(collectors.MockReadings())
	for _, m := range d.Metrics() {
		if n := len(d.History(m)); n != 1 {
			t.Errorf("History(%q) len = %d, want 1", m, n)
		}
	}
}

func TestAppendMissing(t *testing.T) {
	d := newTestDashboard()
	d.Append(map[string]float64{collectors.MetricCPUUsage: 40})

	cpu, ok := d.Latest(collectors.MetricCPUUsage)
	if !ok || !cpu.Valid || cpu.Value != 40 {
		t.Errorf("Latest(cpu) = %+v, %v", cpu, ok)
	}
	gpu, ok := d.Latest(collectors.MetricGPUUsage)
	if !ok || gpu.Valid {
		t.Errorf("Latest(gpu) = %+v, %v, want a missing sample", gpu, ok)
	}
}

func TestAppendEvictsAtCapacity(t *testing.T) {
	d := newTestDashboard() // 5s at 1s → capacity 5
	for i := 1; i <= 8; i++ {
		d.Append(map[string]float64{collectors.MetricCPUUsage: float64(i)})
	}

	hist := d.History(collectors.MetricCPUUsage)
	if len(hist) != 5 {
		t.Fatalf("len = %d, want 5", len(hist))
	}
	for i, s := range hist {
		if want := float64(i + 4); s.Value != want {
			t.Errorf("hist[%d] = %v, want %v", i, s.Value, want)
		}
	}
}

func TestAppendFahrenheit(t *testing.T) {
	s := testSettings()
	s.TempUnit = config.Fahrenheit
	d := New(s, DefaultGraphs(s.Palette), nil)

	d.Append(map[string]float64{
		collectors.MetricCPUTemp:  100,
		collectors.MetricCPUUsage: 100,
	})

	temp, _ := d.Latest(collectors.MetricCPUTemp)
	if temp.Value != 212 {
		t.Errorf("cpu_temp = %v, want 212", temp.Value)
	}
	usage, _ := d.Latest(collectors.MetricCPUUsage)
	if usage.Value != 100 {
		t.Errorf("cpu_usage = %v, want unconverted 100", usage.Value)
	}
	gpu, _ := d.Latest(collectors.MetricGPUTemp)
	if gpu.Valid {
		t.Error("missing temperature should stay missing after conversion")
	}
}

func TestApplyResetPolicy(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		wantReset bool
	}{
		{"unchanged", func(s *Settings) {}, false},
		{"smoothing", func(s *Settings) { s.Smoothing = chart.SmoothRound }, false},
		{"palette", func(s *Settings) { s.Palette.Accent = color.MustHex("#123456") }, false},
		{"interval", func(s *Settings) { s.Interval = 2 * time.Second }, true},
		{"visible seconds", func(s *Settings) { s.VisibleSeconds = 10 }, true},
		{"temp unit", func(s *Settings) { s.TempUnit = config.Fahrenheit }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDashboard()
			d.Append(collectors.MockReadings())
			d.Append(collectors.MockReadings())

			s := d.Settings()
			tt.mutate(&s)
			if got := d.Apply(s); got != tt.wantReset {
				t.Errorf("Apply() reset = %v, want %v", got, tt.wantReset)
			}

			n := len(d.History(collectors.MetricCPUUsage))
			if tt.wantReset && n != 0 {
				t.Errorf("history len = %d after reset, want 0", n)
			}
			if !tt.wantReset && n != 2 {
				t.Errorf("history len = %d, want 2 preserved", n)
			}
		})
	}
}

func TestApplyResizesWindows(t *testing.T) {
	d := newTestDashboard()
	s := d.Settings()
	s.Interval = 500 * time.Millisecond
	d.Apply(s)

	for i := 0; i < 20; i++ {
		d.Append(collectors.MockReadings())
	}
	if n := len(d.History(collectors.MetricFanSpeed)); n != 10 {
		t.Errorf("history len = %d, want new capacity 10", n)
	}
}

func TestUnknownMetric(t *testing.T) {
	d := newTestDashboard()
	if _, ok := d.Latest("disk_usage"); ok {
		t.Error("Latest on unknown metric returned ok")
	}
	if h := d.History("disk_usage"); h != nil {
		t.Errorf("History on unknown metric = %v", h)
	}
	if f := d.Frame("disk", 200, 100); f != nil {
		t.Errorf("Frame on unknown graph = %v", f)
	}
}

func TestTitle(t *testing.T) {
	d := newTestDashboard()
	graphs := d.Graphs()

	tests := []struct {
		graph Graph
		want  string
	}{
		{graphs[0], "CPU Usage (%)"},
		{graphs[3], "Temperature (°C)"},
		{graphs[4], "Fan Speed (RPM)"},
		{Graph{Title: "Bare"}, "Bare"},
	}
	for _, tt := range tests {
		if got := d.Title(tt.graph); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.graph.ID, got, tt.want)
		}
	}

	s := d.Settings()
	s.TempUnit = config.Fahrenheit
	d.Apply(s)
	if got := d.Title(graphs[3]); got != "Temperature (°F)" {
		t.Errorf("Title after unit switch = %q", got)
	}
}

func texts(prims []chart.Primitive) []string {
	var out []string
	for _, p := range prims {
		if t, ok := p.(chart.Text); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestFrameEmpty(t *testing.T) {
	d := newTestDashboard()
	prims := d.Frame("cpu", 200, 100)
	if len(prims) == 0 {
		t.Fatal("Frame produced no primitives")
	}
	if bg, ok := prims[0].(chart.Rect); !ok || bg.Fill != color.MustHex(color.DefaultChartBackground) {
		t.Errorf("first primitive = %#v, want chart background rect", prims[0])
	}
	if got := texts(prims); !contains(got, "N/A") || !contains(got, "CPU Usage (%)") {
		t.Errorf("texts = %v, want title and N/A placeholder", got)
	}
}

func TestFrameData(t *testing.T) {
	d := newTestDashboard()
	for i := 0; i < 5; i++ {
		d.Append(collectors.MockReadings())
	}

	prims := d.Frame("fan", 200, 100)
	got := texts(prims)
	for _, want := range []string{"Fan Speed (RPM)", "5000", "0", "now"} {
		if !contains(got, want) {
			t.Errorf("texts = %v, missing %q", got, want)
		}
	}

	var lines int
	for _, p := range prims {
		if l, ok := p.(chart.Line); ok && l.Color == color.MustHex(color.DefaultInfo) {
			lines++
		}
	}
	if lines == 0 {
		t.Error("no series lines in the fan colour")
	}
}

func TestFrameTemperatureFahrenheitBounds(t *testing.T) {
	s := testSettings()
	s.TempUnit = config.Fahrenheit
	d := New(s, DefaultGraphs(s.Palette), nil)
	for i := 0; i < 5; i++ {
		d.Append(collectors.MockReadings())
	}

	got := texts(d.Frame("temperature", 300, 120))
	for _, want := range []string{"230", "32", "CPU Temp", "GPU Temp", "Temperature (°F)"} {
		if !contains(got, want) {
			t.Errorf("texts = %v, missing %q", got, want)
		}
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct{ c, f float64 }{
		{0, 32},
		{100, 212},
		{110, 230},
		{-40, -40},
		{37, 98.6},
	}
	for _, tt := range tests {
		if got := CelsiusToFahrenheit(tt.c); math.Abs(got-tt.f) > 1e-9 {
			t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", tt.c, got, tt.f)
		}
	}
}

func TestBoundsAndUnitLabel(t *testing.T) {
	d := newTestDashboard()
	graphs := d.Graphs()
	temp := graphs[3]

	if lo, hi := d.Bounds(temp.Series[0]); lo != 0 || hi != 110 {
		t.Errorf("Bounds(C) = %v, %v, want 0, 110", lo, hi)
	}
	if got := d.UnitLabel(temp); got != "°C" {
		t.Errorf("UnitLabel = %q, want °C", got)
	}

	s := d.Settings()
	s.TempUnit = config.Fahrenheit
	d.Apply(s)

	if lo, hi := d.Bounds(temp.Series[1]); lo != 32 || hi != 230 {
		t.Errorf("Bounds(F) = %v, %v, want 32, 230", lo, hi)
	}
	if lo, hi := d.Bounds(graphs[4].Series[0]); lo != 0 || hi != 5000 {
		t.Errorf("fan Bounds changed with unit: %v, %v", lo, hi)
	}
	if got := d.UnitLabel(graphs[0]); got != "%" {
		t.Errorf("UnitLabel(cpu) = %q, want %%", got)
	}
}
