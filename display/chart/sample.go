// Package chart is the scrolling time-series engine behind every graph in
// SysIntel. It keeps bounded sample history per series, smooths it, maps it
// onto pixel columns anchored at the right edge ("now"), and produces a flat
// list of drawing primitives that a backend paints onto a surface.
//
// Nothing in this package touches a terminal, a clock or a file: every
// exported function is deterministic given its inputs.
package chart

import (
	"math"
	"time"
)

// Sample is one scalar reading. A sample that is not Valid carries no value
// (the provider could not read the metric this tick).
type Sample struct {
	Value float64
	Valid bool
}

// Missing is the sample appended when a metric could not be read.
var Missing = Sample{}

// Value wraps a reading as a valid sample.
func Value(v float64) Sample {
	return Sample{Value: v, Valid: true}
}

// Present reports whether the sample counts as data for rendering decisions.
// A literal zero is treated the same as a missing reading, so an all-zero
// window shows the "N/A" placeholder instead of a flat line.
func (s Sample) Present() bool {
	return s.Valid && s.Value != 0
}

// anyPresent reports whether at least one sample counts as data.
func anyPresent(samples []Sample) bool {
	for _, s := range samples {
		if s.Present() {
			return true
		}
	}
	return false
}

// MinCapacity is the smallest window a graph can be given. Two samples are
// needed to span any time at all.
const MinCapacity = 2

// CapacityFor returns the number of samples needed to cover visibleSeconds at
// the given sampling interval: max(2, ceil(visibleSeconds*1000/intervalMs)).
func CapacityFor(visibleSeconds float64, interval time.Duration) int {
	ms := float64(interval.Milliseconds())
	if ms <= 0 || visibleSeconds <= 0 {
		return MinCapacity
	}
	n := int(math.Ceil(visibleSeconds * 1000 / ms))
	if n < MinCapacity {
		return MinCapacity
	}
	return n
}

// Window is a fixed-capacity FIFO of samples. Appending to a full window
// evicts the oldest sample. The capacity never changes after construction;
// a new sampling interval means a new Window.
//
// A Window is not safe for concurrent use. The host appends and renders from
// a single event loop.
type Window struct {
	buf   []Sample
	start int
	count int
}

// NewWindow creates an empty window. Capacities below MinCapacity are raised
// to MinCapacity.
func NewWindow(capacity int) *Window {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Window{buf: make([]Sample, capacity)}
}

// Append adds a sample at the newest end, evicting the oldest when full.
func (w *Window) Append(s Sample) {
	if w.count < len(w.buf) {
		w.buf[(w.start+w.count)%len(w.buf)] = s
		w.count++
		return
	}
	w.buf[w.start] = s
	w.start = (w.start + 1) % len(w.buf)
}

// Snapshot returns the retained samples oldest first. The returned slice is a
// copy and may be modified by the caller.
func (w *Window) Snapshot() []Sample {
	out := make([]Sample, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Len returns the number of retained samples.
func (w *Window) Len() int { return w.count }

// Cap returns the fixed capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Latest returns the newest sample. The second return value is false when the
// window is empty.
func (w *Window) Latest() (Sample, bool) {
	if w.count == 0 {
		return Missing, false
	}
	return w.buf[(w.start+w.count-1)%len(w.buf)], true
}

// Reset discards all retained samples, keeping the capacity.
func (w *Window) Reset() {
	w.start = 0
	w.count = 0
}
