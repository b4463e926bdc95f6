package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Enazzzz/SysIntel/display/chart"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the appearance and behavior of a sparkline chart.
type SparklineConfig struct {
	// Samples to render (most recent last). Samples that are missing or zero
	// render as blanks.
	Samples []chart.Sample
	// Smoothing is applied to the samples before scaling.
	Smoothing chart.Smoothing
	// Width is the number of characters to render. If 0, uses len(Samples).
	Width int
	// Min is the minimum value for scaling. If Min == Max, auto-scale.
	Min float64
	// Max is the maximum value for scaling.
	Max float64
	// Label is optional text shown before the sparkline.
	Label string
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// RenderSparkline renders a unicode sparkline chart from the given configuration.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Samples) == 0 {
		return ""
	}

	samples := cfg.Samples
	values := chart.Smooth(samples, cfg.Smoothing)

	width := cfg.Width
	if width <= 0 {
		width = len(samples)
	}

	// Smoothing looks at neighbours, so smooth first and truncate after.
	if width < len(samples) {
		samples = samples[len(samples)-width:]
		values = values[len(values)-width:]
	}

	minVal, maxVal := cfg.Min, cfg.Max
	if minVal == maxVal {
		var ok bool
		minVal, maxVal, ok = presentRange(samples, values)
		if !ok {
			return decorate(cfg, strings.Repeat(" ", width))
		}
	}

	var runes []rune
	allEqual := minVal == maxVal

	for i, v := range values {
		if !samples[i].Present() {
			runes = append(runes, ' ')
			continue
		}
		if allEqual {
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		normalized := (v - minVal) / (maxVal - minVal)
		normalized = math.Max(0, math.Min(1, normalized))
		idx := int(normalized * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		runes = append(runes, sparkBlocks[idx])
	}

	// Left-pad with spaces if Width > len(samples).
	sparkStr := string(runes)
	if width > len(samples) {
		sparkStr = strings.Repeat(" ", width-len(samples)) + sparkStr
	}

	return decorate(cfg, sparkStr)
}

func decorate(cfg SparklineConfig, spark string) string {
	if cfg.Color != "" {
		spark = lipgloss.NewStyle().Foreground(cfg.Color).Render(spark)
	}
	if cfg.Label != "" {
		spark = cfg.Label + " " + spark
	}
	return spark
}

// presentRange returns the smallest and largest value among present samples.
func presentRange(samples []chart.Sample, values []float64) (lo, hi float64, ok bool) {
	for i, s := range samples {
		if !s.Present() {
			continue
		}
		v := values[i]
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// RenderSparklineWithRange renders a sparkline with auto-scaling and min/max labels.
// Format: min▁▂▃▄▅▆▇█max
func RenderSparklineWithRange(samples []chart.Sample, width int) string {
	lo, hi, ok := presentRange(samples, chart.Smooth(samples, chart.SmoothNone))
	if !ok {
		return ""
	}

	sparkline := RenderSparkline(SparklineConfig{
		Samples: samples,
		Width:   width,
	})

	return fmt.Sprintf("%.0f%s%.0f", lo, sparkline, hi)
}
