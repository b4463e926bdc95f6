// Package collectors provides the data collection interface and registration
// for SysIntel metrics gathering. Each collector reads one or more hardware
// metrics and reports the latest reading for each as a float.
package collectors

import (
	"context"
	"fmt"
	"time"
)

// Metric keys shared by collectors and the dashboard.
const (
	MetricCPUUsage    = "cpu_usage"
	MetricMemoryUsage = "memory_usage"
	MetricGPUUsage    = "gpu_usage"
	MetricCPUTemp     = "cpu_temp"
	MetricGPUTemp     = "gpu_temp"
	MetricFanSpeed    = "fan_speed"
)

// AllMetrics lists every metric key in display order.
var AllMetrics = []string{
	MetricCPUUsage,
	MetricMemoryUsage,
	MetricGPUUsage,
	MetricCPUTemp,
	MetricGPUTemp,
	MetricFanSpeed,
}

// Collector is the interface that all data collectors must implement.
type Collector interface {
	// Name returns the collector's unique identifier. Names must be unique
	// within a Registry.
	Name() string

	// Description returns a human-readable description of what this collector gathers.
	Description() string

	// Metrics returns the metric keys this collector can report.
	Metrics() []string

	// Collect reads the current value of each metric. A metric that could not
	// be read is left out of Readings; the reason goes into Warnings.
	Collect(ctx context.Context) (*CollectResult, error)
}

// CollectResult holds the output of a collection run.
type CollectResult struct {
	// Collector is the name of the collector that produced this result.
	Collector string `json:"collector"`

	// Timestamp records when the collection completed.
	Timestamp time.Time `json:"timestamp"`

	// Readings maps metric keys to their current value. Temperatures are in
	// degrees Celsius, usage in percent and fan speed in RPM.
	Readings map[string]float64 `json:"readings"`

	// Warnings contains non-fatal issues encountered during collection.
	Warnings []string `json:"warnings,omitempty"`
}

// Registry holds registered collectors and provides lookup by name.
type Registry struct {
	collectors []Collector
}

// NewRegistry creates a new empty collector registry.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make([]Collector, 0),
	}
}

// Register adds a collector to the registry.
// If a collector with the same name already exists, it is replaced.
func (r *Registry) Register(c Collector) {
	for i, existing := range r.collectors {
		if existing.Name() == c.Name() {
			r.collectors[i] = c
			return
		}
	}
	r.collectors = append(r.collectors, c)
}

// Get returns a collector by name. The second return value indicates
// whether the collector was found.
func (r *Registry) Get(name string) (Collector, bool) {
	for _, c := range r.collectors {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// All returns all registered collectors.
func (r *Registry) All() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}

// CollectAll runs every collector in registration order and merges their
// readings. A later collector overwrites an earlier one's reading for the
// same key. A collector that fails contributes a warning instead of readings.
// Only context cancellation aborts the run.
func (r *Registry) CollectAll(ctx context.Context) (*CollectResult, error) {
	merged := &CollectResult{
		Collector: "all",
		Readings:  make(map[string]float64),
	}

	for _, c := range r.collectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := c.Collect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			merged.Warnings = append(merged.Warnings, fmt.Sprintf("%s: %v", c.Name(), err))
			continue
		}
		if res == nil {
			continue
		}
		for k, v := range res.Readings {
			merged.Readings[k] = v
		}
		merged.Warnings = append(merged.Warnings, res.Warnings...)
	}

	merged.Timestamp = time.Now()
	return merged, nil
}
