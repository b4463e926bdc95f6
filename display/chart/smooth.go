package chart

import (
	"fmt"
	"math"
	"strings"
)

// Smoothing selects how a series is filtered before it is drawn.
type Smoothing int

const (
	// SmoothNone draws samples as recorded.
	SmoothNone Smoothing = iota
	// SmoothAverage replaces each sample with the mean of itself and its
	// immediate neighbours.
	SmoothAverage
	// SmoothRound flattens isolated single-sample spikes.
	SmoothRound
)

// roundSpikeRatio is how far a sample must jump past both neighbours,
// relative to the neighbours' own difference, to count as a spike.
const roundSpikeRatio = 1.5

var smoothingNames = map[Smoothing]string{
	SmoothNone:    "none",
	SmoothAverage: "average",
	SmoothRound:   "round",
}

// String returns the configuration name of the mode.
func (s Smoothing) String() string {
	if name, ok := smoothingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Smoothing(%d)", int(s))
}

// Next cycles none -> average -> round -> none.
func (s Smoothing) Next() Smoothing {
	switch s {
	case SmoothNone:
		return SmoothAverage
	case SmoothAverage:
		return SmoothRound
	default:
		return SmoothNone
	}
}

// ParseSmoothing converts a configuration name into a Smoothing mode.
func ParseSmoothing(name string) (Smoothing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for mode, n := range smoothingNames {
		if n == key {
			return mode, nil
		}
	}
	return SmoothNone, fmt.Errorf("chart: unknown smoothing mode %q (want none, average or round)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Smoothing) MarshalText() ([]byte, error) {
	if _, ok := smoothingNames[s]; !ok {
		return nil, fmt.Errorf("chart: unknown smoothing mode %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Smoothing) UnmarshalText(text []byte) error {
	mode, err := ParseSmoothing(string(text))
	if err != nil {
		return err
	}
	*s = mode
	return nil
}

// Smooth filters samples with the given mode and returns one value per input
// sample, index aligned. Missing samples come out as 0 except where averaging
// can fill them from valid neighbours. Unknown modes behave like SmoothNone.
func Smooth(samples []Sample, mode Smoothing) []float64 {
	switch mode {
	case SmoothAverage:
		return movingAverage(samples)
	case SmoothRound:
		return roundCorners(samples)
	default:
		return values(samples)
	}
}

func values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		if s.Valid {
			out[i] = s.Value
		}
	}
	return out
}

// movingAverage is a centred three-sample mean clamped at both ends.
// Missing samples are left out of the mean; a neighbourhood with no valid
// sample averages to 0.
func movingAverage(samples []Sample) []float64 {
	if len(samples) < 2 {
		return values(samples)
	}

	out := make([]float64, len(samples))
	for i := range samples {
		lo := max(0, i-1)
		hi := min(len(samples)-1, i+1)

		var sum float64
		var n int
		for j := lo; j <= hi; j++ {
			if samples[j].Valid {
				sum += samples[j].Value
				n++
			}
		}
		if n > 0 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// roundCorners replaces an interior sample with the midpoint of its
// neighbours when it overshoots both of them by more than roundSpikeRatio
// times the neighbours' spread. Endpoints are never altered, and any triple
// containing a missing sample is left alone.
func roundCorners(samples []Sample) []float64 {
	out := values(samples)
	if len(samples) < 3 {
		return out
	}

	for i := 1; i < len(samples)-1; i++ {
		prev, curr, next := samples[i-1], samples[i], samples[i+1]
		if !prev.Valid || !curr.Valid || !next.Valid {
			continue
		}
		spread := math.Abs(prev.Value-next.Value) * roundSpikeRatio
		if math.Abs(curr.Value-prev.Value) > spread && math.Abs(curr.Value-next.Value) > spread {
			out[i] = (prev.Value + next.Value) / 2
		}
	}
	return out
}
