// Package status grades raw collector readings against alert thresholds.
package status

import (
	"fmt"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
)

// Level represents system health.
type Level int

const (
	LevelHealthy  Level = iota // Everything normal
	LevelWarning               // Something needs attention
	LevelCritical              // Immediate attention needed
	LevelUnknown               // Insufficient data
)

// String returns the human-readable name for a Level.
func (l Level) String() string {
	switch l {
	case LevelHealthy:
		return "healthy"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// levelSeverity returns the sort order for levels. Higher is worse.
// Critical > Warning > Unknown > Healthy.
func levelSeverity(l Level) int {
	switch l {
	case LevelHealthy:
		return 0
	case LevelUnknown:
		return 1
	case LevelWarning:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// worstLevel returns whichever Level is more severe.
func worstLevel(a, b Level) Level {
	if levelSeverity(a) >= levelSeverity(b) {
		return a
	}
	return b
}

// Threshold is the pair of limits for one metric. A reading at or above
// Warning is a warning; at or above Critical it is critical.
type Threshold struct {
	Warning  float64
	Critical float64
}

// ComponentStatus holds the evaluation result for a single metric.
type ComponentStatus struct {
	Metric string
	Level  Level
	Reason string
}

// SystemStatus is the aggregate evaluation result.
type SystemStatus struct {
	// Overall is the worst level among metrics that had a reading. It is
	// LevelUnknown only when no thresholded metric had one.
	Overall     Level
	Components  []ComponentStatus
	EvaluatedAt time.Time
}

// Worst returns the component that set Overall, if any.
func (s SystemStatus) Worst() (ComponentStatus, bool) {
	for _, c := range s.Components {
		if c.Level == s.Overall {
			return c, true
		}
	}
	return ComponentStatus{}, false
}

// Level returns the level recorded for metric. Metrics without a threshold
// are LevelHealthy.
func (s SystemStatus) Level(metric string) Level {
	for _, c := range s.Components {
		if c.Metric == metric {
			return c.Level
		}
	}
	return LevelHealthy
}

// EvaluatorConfig holds thresholds for evaluation rules, keyed by metric.
// Temperatures are in °C, matching what collectors report.
type EvaluatorConfig struct {
	Thresholds map[string]Threshold
}

// DefaultEvaluatorConfig returns an EvaluatorConfig with sensible defaults.
// Fan speed has no threshold: a fast fan is the cure, not the problem.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Thresholds: map[string]Threshold{
			collectors.MetricCPUUsage:    {Warning: 85, Critical: 95},
			collectors.MetricMemoryUsage: {Warning: 85, Critical: 95},
			collectors.MetricGPUUsage:    {Warning: 90, Critical: 98},
			collectors.MetricCPUTemp:     {Warning: 80, Critical: 95},
			collectors.MetricGPUTemp:     {Warning: 85, Critical: 100},
		},
	}
}

// Evaluator analyzes collector readings and determines system health.
type Evaluator struct {
	config EvaluatorConfig
	now    func() time.Time
}

// NewEvaluator creates an Evaluator with the given configuration.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{config: cfg, now: time.Now}
}

// Evaluate grades every thresholded metric in display order. A metric
// absent from readings is LevelUnknown.
func (e *Evaluator) Evaluate(readings map[string]float64) SystemStatus {
	st := SystemStatus{
		Overall:     LevelUnknown,
		EvaluatedAt: e.now(),
	}

	known := false
	for _, metric := range collectors.AllMetrics {
		th, ok := e.config.Thresholds[metric]
		if !ok {
			continue
		}
		c := evaluateMetric(metric, readings, th)
		st.Components = append(st.Components, c)

		if c.Level == LevelUnknown {
			continue
		}
		if !known {
			st.Overall = c.Level
			known = true
		} else {
			st.Overall = worstLevel(st.Overall, c.Level)
		}
	}
	return st
}

func evaluateMetric(metric string, readings map[string]float64, th Threshold) ComponentStatus {
	v, ok := readings[metric]
	if !ok {
		return ComponentStatus{Metric: metric, Level: LevelUnknown, Reason: "no reading"}
	}

	switch {
	case v >= th.Critical:
		return ComponentStatus{
			Metric: metric,
			Level:  LevelCritical,
			Reason: fmt.Sprintf("%s at %.0f, critical from %.0f", metric, v, th.Critical),
		}
	case v >= th.Warning:
		return ComponentStatus{
			Metric: metric,
			Level:  LevelWarning,
			Reason: fmt.Sprintf("%s at %.0f, warning from %.0f", metric, v, th.Warning),
		}
	default:
		return ComponentStatus{Metric: metric, Level: LevelHealthy, Reason: "normal"}
	}
}
