// Package dashboard owns the sample windows behind every graph and turns
// collector readings into chart frames.
//
// A Dashboard is not safe for concurrent use. The TUI appends and renders
// from its Update loop; the headless snapshot path does the same from main.
package dashboard

import (
	"fmt"
	imgcolor "image/color"
	"io"
	"log/slog"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/display/chart"
	"github.com/Enazzzz/SysIntel/display/color"
)

// Settings are the runtime knobs that shape every graph.
type Settings struct {
	VisibleSeconds float64
	Interval       time.Duration
	Smoothing      chart.Smoothing
	TempUnit       string
	Palette        color.Palette
}

// SettingsFrom extracts the dashboard settings from a validated config.
func SettingsFrom(cfg *config.Config) (Settings, error) {
	palette, err := cfg.Display.Theme.Palette()
	if err != nil {
		return Settings{}, fmt.Errorf("dashboard: theme: %w", err)
	}
	return Settings{
		VisibleSeconds: cfg.Display.VisibleSeconds,
		Interval:       cfg.Interval(),
		Smoothing:      cfg.Display.Smoothing,
		TempUnit:       cfg.Display.TempUnit,
		Palette:        palette,
	}, nil
}

// Capacity returns the window capacity these settings call for.
func (s Settings) Capacity() int {
	return chart.CapacityFor(s.VisibleSeconds, s.Interval)
}

// SeriesSpec binds one metric to one line on a graph.
type SeriesSpec struct {
	Metric string
	Label  string
	Color  imgcolor.NRGBA
	// YMin and YMax are in the metric's native unit; temperatures are °C.
	YMin float64
	YMax float64
}

// Graph is one chart: a title plus one or more series. The first series
// supplies the y-axis labels and the area fill.
type Graph struct {
	ID     string
	Title  string
	Unit   string
	Series []SeriesSpec
	// Legend draws a swatch per series.
	Legend bool
}

// UnitTemperature marks a graph whose readings are temperatures. Its title
// and bounds follow the configured unit.
const UnitTemperature = "temp"

// isTemperature reports whether metric holds a temperature reading.
func isTemperature(metric string) bool {
	return metric == collectors.MetricCPUTemp || metric == collectors.MetricGPUTemp
}

// DefaultGraphs returns the five standard graphs coloured from p.
func DefaultGraphs(p color.Palette) []Graph {
	return []Graph{
		{
			ID: "cpu", Title: "CPU Usage", Unit: "%",
			Series: []SeriesSpec{{Metric: collectors.MetricCPUUsage, Label: "CPU", Color: p.Accent, YMin: 0, YMax: 100}},
		},
		{
			ID: "memory", Title: "Memory Usage", Unit: "%",
			Series: []SeriesSpec{{Metric: collectors.MetricMemoryUsage, Label: "Memory", Color: p.Success, YMin: 0, YMax: 100}},
		},
		{
			ID: "gpu", Title: "GPU Usage", Unit: "%",
			Series: []SeriesSpec{{Metric: collectors.MetricGPUUsage, Label: "GPU", Color: p.Warning, YMin: 0, YMax: 100}},
		},
		{
			ID: "temperature", Title: "Temperature", Unit: UnitTemperature,
			Series: []SeriesSpec{
				{Metric: collectors.MetricCPUTemp, Label: "CPU Temp", Color: p.Danger, YMin: 0, YMax: 110},
				{Metric: collectors.MetricGPUTemp, Label: "GPU Temp", Color: p.Warning, YMin: 0, YMax: 110},
			},
			Legend: true,
		},
		{
			ID: "fan", Title: "Fan Speed", Unit: "RPM",
			Series: []SeriesSpec{{Metric: collectors.MetricFanSpeed, Label: "Fan", Color: p.Info, YMin: 0, YMax: 5000}},
		},
	}
}

// Dashboard holds one window per metric used by its graphs.
type Dashboard struct {
	logger   *slog.Logger
	settings Settings
	graphs   []Graph
	metrics  []string
	windows  map[string]*chart.Window
}

// New creates a dashboard with empty windows sized for settings.
// If logger is nil, a no-op logger is used.
func New(settings Settings, graphs []Graph, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Dashboard{
		logger:   logger,
		settings: settings,
		graphs:   append([]Graph(nil), graphs...),
		windows:  make(map[string]*chart.Window),
	}
	for _, g := range d.graphs {
		for _, s := range g.Series {
			if _, ok := d.windows[s.Metric]; !ok {
				d.metrics = append(d.metrics, s.Metric)
				d.windows[s.Metric] = nil
			}
		}
	}
	d.resetWindows()
	return d
}

func (d *Dashboard) resetWindows() {
	capacity := d.settings.Capacity()
	for _, m := range d.metrics {
		d.windows[m] = chart.NewWindow(capacity)
	}
	d.logger.Debug("dashboard windows reset",
		"capacity", capacity,
		"interval", d.settings.Interval,
		"visible_seconds", d.settings.VisibleSeconds,
	)
}

// Settings returns the current settings.
func (d *Dashboard) Settings() Settings {
	return d.settings
}

// Graphs returns the graphs in display order.
func (d *Dashboard) Graphs() []Graph {
	return append([]Graph(nil), d.graphs...)
}

// Metrics returns every metric key with a window, in first-use order.
func (d *Dashboard) Metrics() []string {
	return append([]string(nil), d.metrics...)
}

// Append records one tick: one sample per metric. Metrics absent from
// readings get a missing sample so every window advances together.
// Temperatures arrive in °C and are stored in the configured unit.
func (d *Dashboard) Append(readings map[string]float64) {
	for _, m := range d.metrics {
		v, ok := readings[m]
		if !ok {
			d.windows[m].Append(chart.Missing)
			continue
		}
		if isTemperature(m) && d.settings.TempUnit == config.Fahrenheit {
			v = CelsiusToFahrenheit(v)
		}
		d.windows[m].Append(chart.Value(v))
	}
}

// Apply switches to new settings. Changing the interval, the visible span
// or the temperature unit rebuilds every window and discards history, and
// Apply reports true. Smoothing and palette changes only affect later frames.
func (d *Dashboard) Apply(s Settings) (reset bool) {
	old := d.settings
	d.settings = s

	reset = old.Capacity() != s.Capacity() ||
		old.Interval != s.Interval ||
		old.VisibleSeconds != s.VisibleSeconds ||
		old.TempUnit != s.TempUnit
	if reset {
		d.logger.Info("settings changed, resetting history",
			"interval", s.Interval,
			"visible_seconds", s.VisibleSeconds,
			"temp_unit", s.TempUnit,
		)
		d.resetWindows()
	}
	return reset
}

// Latest returns the most recent sample for metric.
func (d *Dashboard) Latest(metric string) (chart.Sample, bool) {
	w, ok := d.windows[metric]
	if !ok {
		return chart.Missing, false
	}
	return w.Latest()
}

// History returns a snapshot of the window for metric, oldest first.
func (d *Dashboard) History(metric string) []chart.Sample {
	w, ok := d.windows[metric]
	if !ok {
		return nil
	}
	return w.Snapshot()
}

// Bounds returns the y-axis range of a series in the configured unit.
func (d *Dashboard) Bounds(spec SeriesSpec) (lo, hi float64) {
	if isTemperature(spec.Metric) && d.settings.TempUnit == config.Fahrenheit {
		return CelsiusToFahrenheit(spec.YMin), CelsiusToFahrenheit(spec.YMax)
	}
	return spec.YMin, spec.YMax
}

// UnitLabel returns the display unit of g's readings, such as "%" or "°F".
func (d *Dashboard) UnitLabel(g Graph) string {
	if g.Unit == UnitTemperature {
		return "°" + d.settings.TempUnit
	}
	return g.Unit
}

// Graph returns the graph with the given ID.
func (d *Dashboard) Graph(id string) (Graph, bool) {
	for _, g := range d.graphs {
		if g.ID == id {
			return g, true
		}
	}
	return Graph{}, false
}

// Title returns the graph title with its unit suffix.
func (d *Dashboard) Title(g Graph) string {
	if g.Unit == "" {
		return g.Title
	}
	return fmt.Sprintf("%s (%s)", g.Title, d.UnitLabel(g))
}

// Frame renders graph id onto a w×h surface. An unknown id yields nil.
func (d *Dashboard) Frame(id string, w, h int) []chart.Primitive {
	g, ok := d.Graph(id)
	if !ok {
		return nil
	}

	p := d.settings.Palette
	cfg := chart.ChartConfig{
		Title:          d.Title(g),
		VisibleSeconds: d.settings.VisibleSeconds,
		Background:     p.ChartBackground,
		Grid:           p.Grid,
		Label:          p.Foreground,
	}

	series := make([]chart.Series, 0, len(g.Series))
	for _, spec := range g.Series {
		lo, hi := d.Bounds(spec)
		win := d.windows[spec.Metric]
		series = append(series, chart.Series{
			Config: chart.SeriesConfig{
				Label:     spec.Label,
				Color:     spec.Color,
				YMin:      lo,
				YMax:      hi,
				Smoothing: d.settings.Smoothing,
			},
			Samples:  win.Snapshot(),
			Capacity: win.Cap(),
		})
		if g.Legend {
			cfg.Legend = append(cfg.Legend, chart.LegendEntry{Text: spec.Label, Color: spec.Color})
		}
	}

	return chart.Render(cfg, series, w, h)
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
