package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/dashboard"
	"github.com/Enazzzz/SysIntel/display/raster"
	"github.com/Enazzzz/SysIntel/display/render"
)

// snapshotOptions controls a headless run.
type snapshotOptions struct {
	// Dir receives one <graph>.png per graph. Empty skips writing files.
	Dir string
	// Ticks is the number of samples to collect before drawing.
	Ticks int
	// Width and Height are the image size in pixels.
	Width  int
	Height int
	// Inline prints each frame to Out using the configured protocol.
	Inline bool
	Out    io.Writer
}

// parseSize parses "WxH" into positive pixel dimensions.
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want positive WxH", s)
	}
	return w, h, nil
}

// runSnapshot samples the registry opts.Ticks times at the configured
// interval, then draws every graph once.
func runSnapshot(ctx context.Context, cfg *config.Config, registry *collectors.Registry, logger *slog.Logger, opts snapshotOptions) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	settings, err := dashboard.SettingsFrom(cfg)
	if err != nil {
		return err
	}
	dash := dashboard.New(settings, dashboard.DefaultGraphs(settings.Palette), logger)

	if _, err := sample(ctx, registry, dash, settings.Interval, opts.Ticks, logger); err != nil {
		return err
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	protocol, err := render.ParseProtocol(cfg.Display.Protocol)
	if err != nil {
		return err
	}

	for _, g := range dash.Graphs() {
		canvas := raster.NewCanvas(opts.Width, opts.Height)
		canvas.Paint(dash.Frame(g.ID, opts.Width, opts.Height))

		if opts.Dir != "" {
			path := filepath.Join(opts.Dir, g.ID+".png")
			if err := canvas.SavePNG(path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info("snapshot written", "graph", g.ID, "path", path)
		}

		if opts.Inline {
			cols, _ := render.TerminalSize()
			// Terminal cells are roughly twice as tall as they are wide.
			rows := max(cols*opts.Height/opts.Width/2, 1)

			fc := render.DefaultFrameConfig(cols, rows)
			fc.Protocol = protocol
			frame, err := render.Encode(canvas.Image(), fc)
			if err != nil {
				return fmt.Errorf("encode %s: %w", g.ID, err)
			}
			fmt.Fprintln(opts.Out, frame.Output)
		}
	}
	return nil
}

// sample appends ticks samples to dash, one per interval, and returns the
// warnings of the last tick. A failed collection records a missed sample
// instead of aborting.
func sample(ctx context.Context, registry *collectors.Registry, dash *dashboard.Dashboard, interval time.Duration, ticks int, logger *slog.Logger) ([]string, error) {
	if ticks <= 0 {
		return nil, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var warnings []string
	for i := 0; ; i++ {
		cctx, cancel := context.WithTimeout(ctx, interval)
		res, err := registry.CollectAll(cctx)
		cancel()

		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			logger.Warn("collection failed", "tick", i, "error", err)
			warnings = []string{err.Error()}
			dash.Append(nil)
		default:
			warnings = res.Warnings
			for _, w := range res.Warnings {
				logger.Debug("collector warning", "tick", i, "warning", w)
			}
			dash.Append(res.Readings)
		}

		if i == ticks-1 {
			return warnings, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
