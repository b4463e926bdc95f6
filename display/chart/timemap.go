package chart

// TimeMapper converts between pixel columns and fractional sample indices for
// a window that is Count samples full out of Capacity. The newest sample sits
// at the right edge; a partly filled window leaves blank space on the left.
type TimeMapper struct {
	// Width is the drawing surface width in pixels.
	Width int
	// VisibleSeconds is the time span covered by the full width.
	VisibleSeconds float64
	// Capacity is the window capacity the span is divided into.
	Capacity int
	// Count is the number of samples currently held.
	Count int
}

// TimePerSample is the time between two adjacent samples.
func (m TimeMapper) TimePerSample() float64 {
	if m.Capacity > 1 {
		return m.VisibleSeconds / float64(m.Capacity-1)
	}
	return m.VisibleSeconds
}

// FilledSeconds is the time span covered by the held samples.
func (m TimeMapper) FilledSeconds() float64 {
	if m.Count <= 1 {
		return 0
	}
	return m.TimePerSample() * float64(m.Count-1)
}

// FilledWidth is the pixel width covered by the held samples. It is computed
// from the sample ratio rather than seconds so a full window is exactly Width.
func (m TimeMapper) FilledWidth() float64 {
	switch {
	case m.VisibleSeconds <= 0:
		return float64(m.Width)
	case m.Count <= 1:
		return 0
	case m.Count >= m.Capacity:
		return float64(m.Width)
	}
	return float64(m.Width) * float64(m.Count-1) / float64(m.Capacity-1)
}

// LeftEdge is the x coordinate where data starts.
func (m TimeMapper) LeftEdge() float64 {
	return float64(m.Width) - m.FilledWidth()
}

// TimeToX maps seconds-before-now onto an x coordinate.
func (m TimeMapper) TimeToX(t float64) float64 {
	if m.VisibleSeconds <= 0 {
		return float64(m.Width)
	}
	return float64(m.Width) - t/m.VisibleSeconds*float64(m.Width)
}

// FracIndex maps pixel column px to a fractional sample index. The result may
// fall outside [0, Count-1]; ValueAt clamps it.
func (m TimeMapper) FracIndex(px int) float64 {
	tps := m.TimePerSample()
	if tps == 0 {
		return 0
	}
	var t float64
	if m.Width > 0 {
		t = m.VisibleSeconds * float64(m.Width-px) / float64(m.Width)
	}
	return (m.FilledSeconds() - t) / tps
}

// ValueAt returns the value drawn at pixel column px, linearly interpolated
// between the two surrounding samples and clamped to the first and last
// sample outside them. values must hold Count entries.
func (m TimeMapper) ValueAt(values []float64, px int) float64 {
	n := min(m.Count, len(values))
	if n == 0 {
		return 0
	}

	idx := m.FracIndex(px)
	if idx < 0 {
		return values[0]
	}
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return values[n-1]
	}
	frac := idx - float64(lo)
	return values[lo]*(1-frac) + values[hi]*frac
}

// Interpolate returns one point per pixel column from the left edge to
// Width-1, with Y holding the interpolated value (not yet mapped to pixels).
func (m TimeMapper) Interpolate(values []float64) []Point {
	start := max(int(m.LeftEdge()), 0)
	if start >= m.Width {
		return nil
	}
	pts := make([]Point, 0, m.Width-start)
	for px := start; px < m.Width; px++ {
		pts = append(pts, Point{X: float64(px), Y: m.ValueAt(values, px)})
	}
	return pts
}
