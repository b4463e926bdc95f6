// Package synthetic provides a deterministic collector that generates smooth
// waveforms for every metric. It drives the demo binary and lets the TUI run
// on machines without readable sensors.
package synthetic

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
)

const (
	collectorName        = "synthetic"
	collectorDescription = "Deterministic sine and sawtooth waveforms for every metric"
)

// Options tunes the generated signal.
type Options struct {
	// GPUGapEvery drops the GPU readings for GPUGapLen steps out of every
	// GPUGapEvery steps, so charts show gaps. Zero disables gaps.
	GPUGapEvery int
	GPUGapLen   int

	// Seed shifts the phase of every wave.
	Seed float64
}

// Collector generates readings from a step counter advanced on each Collect.
type Collector struct {
	opts   Options
	logger *slog.Logger

	mu   sync.Mutex
	step int
}

// New creates a synthetic collector. If logger is nil, a no-op logger is used.
func New(opts Options, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{opts: opts, logger: logger}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string {
	return collectorName
}

// Description returns a human-readable description of what this collector gathers.
func (c *Collector) Description() string {
	return collectorDescription
}

// Metrics returns every metric key.
func (c *Collector) Metrics() []string {
	return append([]string(nil), collectors.AllMetrics...)
}

// Collect returns the readings for the current step and advances it.
func (c *Collector) Collect(ctx context.Context) (*collectors.CollectResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c.mu.Lock()
	step := c.step
	c.step++
	c.mu.Unlock()

	readings := Readings(step, c.opts)

	c.logger.Debug("synthetic collected", "step", step, "metrics", len(readings))

	return &collectors.CollectResult{
		Collector: collectorName,
		Timestamp: time.Now(),
		Readings:  readings,
	}, nil
}

// Readings computes the readings for a given step. Values never land on
// exactly zero, which charts treat as "no data".
func Readings(step int, opts Options) map[string]float64 {
	t := float64(step) + opts.Seed

	cpu := 45 + 30*math.Sin(t/6) + 10*math.Sin(t/1.7)
	mem := 55 + 8*math.Sin(t/40)
	cpuTemp := 48 + 0.35*cpu
	fan := 900 + 25*cpu

	readings := map[string]float64{
		collectors.MetricCPUUsage:    clamp(cpu, 1, 100),
		collectors.MetricMemoryUsage: clamp(mem, 1, 100),
		collectors.MetricCPUTemp:     cpuTemp,
		collectors.MetricFanSpeed:    fan,
	}

	if !inGap(step, opts) {
		// Sawtooth load that ramps up over 20 steps, like a render job.
		gpu := 5 + 4.5*float64(step%20)
		readings[collectors.MetricGPUUsage] = clamp(gpu, 1, 100)
		readings[collectors.MetricGPUTemp] = 38 + 0.4*gpu
	}

	return readings
}

func inGap(step int, opts Options) bool {
	if opts.GPUGapEvery <= 0 || opts.GPUGapLen <= 0 {
		return false
	}
	return step%opts.GPUGapEvery >= opts.GPUGapEvery-opts.GPUGapLen
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

var _ collectors.Collector = (*Collector)(nil)
