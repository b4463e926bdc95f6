// demo runs the dashboard against deterministic synthetic readings, so the
// charts can be shown on machines without sensors.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/collectors/synthetic"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/display/tui"
)

func main() {
	interval := flag.Int("interval", config.DefaultIntervalMS, "Sampling interval in milliseconds")
	smoothing := flag.String("smoothing", "round", "Smoothing mode (none|average|round)")
	gapEvery := flag.Int("gap-every", 40, "Drop GPU readings for part of every N samples (0 disables)")
	gapLen := flag.Int("gap-len", 6, "Length of each GPU gap in samples")
	flag.Parse()

	cfg := config.DefaultConfig()
	cfg.Sampling.IntervalMS = *interval
	if err := cfg.Display.Smoothing.UnmarshalText([]byte(*smoothing)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	registry := collectors.NewRegistry()
	registry.Register(synthetic.New(synthetic.Options{
		GPUGapEvery: *gapEvery,
		GPUGapLen:   *gapLen,
	}, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, tui.Options{Config: cfg, Registry: registry}); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}
