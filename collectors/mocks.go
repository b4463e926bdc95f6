package collectors

import (
	"context"
	"sync"
	"time"
)

// MockReadings returns a plausible set of readings for a lightly loaded
// desktop. Useful for UI initialization and testing without touching /proc.
func MockReadings() map[string]float64 {
	return map[string]float64{
		MetricCPUUsage:    23.5,
		MetricMemoryUsage: 61.2,
		MetricGPUUsage:    8.0,
		MetricCPUTemp:     52.0,
		MetricGPUTemp:     44.0,
		MetricFanSpeed:    1450,
	}
}

// MockCollector replays scripted readings, one entry per Collect call. After
// the script runs out the last entry repeats. An empty script reports nothing.
type MockCollector struct {
	// ID is returned by Name. Defaults to "mock".
	ID string

	// Script holds the readings returned by successive Collect calls.
	Script []map[string]float64

	// Err, when set, is returned by every Collect call.
	Err error

	// Warnings are attached to every successful result.
	Warnings []string

	mu    sync.Mutex
	calls int
}

// NewMockCollector creates a MockCollector that replays script.
func NewMockCollector(script ...map[string]float64) *MockCollector {
	return &MockCollector{ID: "mock", Script: script}
}

// Name returns the collector's unique identifier.
func (m *MockCollector) Name() string {
	if m.ID == "" {
		return "mock"
	}
	return m.ID
}

// Description returns a human-readable description.
func (m *MockCollector) Description() string {
	return "Scripted readings for tests and demos"
}

// Metrics returns every key that appears anywhere in the script.
func (m *MockCollector) Metrics() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, key := range AllMetrics {
		for _, step := range m.Script {
			if _, ok := step[key]; ok && !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Calls returns how many times Collect has been invoked.
func (m *MockCollector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Collect returns the next scripted readings.
func (m *MockCollector) Collect(ctx context.Context) (*CollectResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m.mu.Lock()
	step := m.calls
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	readings := make(map[string]float64)
	if len(m.Script) > 0 {
		if step >= len(m.Script) {
			step = len(m.Script) - 1
		}
		for k, v := range m.Script[step] {
			readings[k] = v
		}
	}

	return &CollectResult{
		Collector: m.Name(),
		Timestamp: time.Now(),
		Readings:  readings,
		Warnings:  append([]string(nil), m.Warnings...),
	}, nil
}

var _ Collector = (*MockCollector)(nil)
