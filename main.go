// sysintel is a live terminal dashboard for CPU, memory, GPU, temperature
// and fan readings, drawn as scrolling time-series charts.
//
// Usage:
//
//	sysintel [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/sysintel/config.yaml)
//	-verbose          Enable debug logging
//	-version          Print version and exit
//	-print-config     Print the effective configuration as YAML and exit
//	-snapshot dir     Collect samples headlessly and write one PNG per graph to dir
//	-ticks int        Samples to collect for -snapshot and -inline (default 20)
//	-size string      Snapshot image size as WxH (default 800x300)
//	-inline           Print one frame per graph to the terminal and exit
//	-diagnose         Print configuration, terminal and sensor diagnostics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/collectors/sysmetrics"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/display/color"
	"github.com/Enazzzz/SysIntel/display/tui"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/sysintel/config.yaml)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
		printConfig = flag.Bool("print-config", false, "Print the effective configuration as YAML and exit")
		snapshotDir = flag.String("snapshot", "", "Collect samples headlessly and write one PNG per graph to this directory")
		ticks       = flag.Int("ticks", 20, "Samples to collect for -snapshot and -inline")
		size        = flag.String("size", "800x300", "Snapshot image size as WxH")
		inline      = flag.Bool("inline", false, "Print one frame per graph to the terminal and exit")
		diagnose    = flag.Bool("diagnose", false, "Print configuration, terminal and sensor diagnostics")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sysintel %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration
	// ---------------------------------------------------------------

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode config: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		os.Exit(0)
	}

	logger, closeLog, err := newLogger(cfg.Log, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	color.Apply()

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := collectors.NewRegistry()
	registry.Register(sysmetrics.NewSysMetricsCollector(logger))

	// ---------------------------------------------------------------
	// Headless modes
	// ---------------------------------------------------------------

	if *diagnose {
		if err := runDiagnostics(ctx, os.Stdout, cfg, path, registry, logger); err != nil {
			fmt.Fprintf(os.Stderr, "diagnostics failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *snapshotDir != "" || *inline {
		w, h, err := parseSize(*size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		opts := snapshotOptions{
			Dir:    *snapshotDir,
			Ticks:  *ticks,
			Width:  w,
			Height: h,
			Inline: *inline,
			Out:    os.Stdout,
		}
		if err := runSnapshot(ctx, cfg, registry, logger, opts); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// TUI mode
	// ---------------------------------------------------------------

	err = tui.Run(ctx, tui.Options{
		Config:     cfg,
		ConfigPath: path,
		Registry:   registry,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
