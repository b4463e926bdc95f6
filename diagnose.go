package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/dashboard"
	"github.com/Enazzzz/SysIntel/display/render"
	"github.com/Enazzzz/SysIntel/display/widgets"
	"github.com/Enazzzz/SysIntel/internal/format"
)

// diagnoseTicks is how many samples the sensor probe takes. CPU usage needs
// at least two.
const diagnoseTicks = 4

// runDiagnostics prints the configuration, terminal and sensor state.
func runDiagnostics(ctx context.Context, w io.Writer, cfg *config.Config, path string, registry *collectors.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fmt.Fprintf(w, "sysintel %s diagnostics\n", version)
	fmt.Fprintln(w, "============================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Path:      %s\n", path)
	fmt.Fprintf(w, "  Interval:  %s\n", format.FormatInterval(cfg.Interval()))
	fmt.Fprintf(w, "  Span:      %s\n", format.FormatSpan(cfg.Display.VisibleSeconds))
	fmt.Fprintf(w, "  Smoothing: %s\n", cfg.Display.Smoothing)
	fmt.Fprintf(w, "  Unit:      °%s\n", cfg.Display.TempUnit)
	fmt.Fprintln(w)

	fmt.Fprint(w, render.FormatDiagnostics())
	fmt.Fprintln(w)

	settings, err := dashboard.SettingsFrom(cfg)
	if err != nil {
		return err
	}
	dash := dashboard.New(settings, dashboard.DefaultGraphs(settings.Palette), logger)

	fmt.Fprintf(w, "Sensors (%d samples at %s):\n", diagnoseTicks, format.FormatInterval(settings.Interval))
	warnings, err := sample(ctx, registry, dash, settings.Interval, diagnoseTicks, logger)
	if err != nil {
		return err
	}

	for _, g := range dash.Graphs() {
		unit := dash.UnitLabel(g)
		for _, spec := range g.Series {
			latest, _ := dash.Latest(spec.Metric)
			fmt.Fprintf(w, "  %-10s %-10s %s\n",
				spec.Label,
				format.FormatReading(latest.Value, latest.Present(), unit),
				widgets.RenderSparklineWithRange(dash.History(spec.Metric), diagnoseTicks),
			)
		}
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
	return nil
}
