package chart

import (
	"testing"
	"time"
)

func TestNewWindowMinimumCapacity(t *testing.T) {
	for _, capacity := range []int{-3, 0, 1, 2} {
		w := NewWindow(capacity)
		if w.Cap() != MinCapacity {
			t.Errorf("NewWindow(%d).Cap() = %d, want %d", capacity, w.Cap(), MinCapacity)
		}
	}
	if got := NewWindow(7).Cap(); got != 7 {
		t.Errorf("NewWindow(7).Cap() = %d, want 7", got)
	}
}

func TestWindowFIFOEviction(t *testing.T) {
	for _, capacity := range []int{2, 3, 5, 16} {
		for _, extra := range []int{0, 1, 4, 33} {
			w := NewWindow(capacity)
			total := capacity + extra
			for i := 0; i < total; i++ {
				w.Append(Value(float64(i + 1)))
			}

			snap := w.Snapshot()
			if len(snap) != capacity {
				t.Fatalf("cap %d +%d: len = %d, want %d", capacity, extra, len(snap), capacity)
			}
			for i, s := range snap {
				want := float64(total - capacity + i + 1)
				if !s.Valid || s.Value != want {
					t.Errorf("cap %d +%d: snap[%d] = %+v, want %v", capacity, extra, i, s, want)
				}
			}
		}
	}
}

func TestWindowPartialFill(t *testing.T) {
	w := NewWindow(4)
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
	if _, ok := w.Latest(); ok {
		t.Error("Latest() on empty window reported ok")
	}

	w.Append(Value(3))
	w.Append(Missing)

	snap := w.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	if snap[0] != Value(3) || snap[1] != Missing {
		t.Errorf("snapshot = %+v, want [3 missing]", snap)
	}
	latest, ok := w.Latest()
	if !ok || latest.Valid {
		t.Errorf("Latest() = %+v, %v; want missing, true", latest, ok)
	}
}

func TestWindowSnapshotIsCopy(t *testing.T) {
	w := NewWindow(3)
	w.Append(Value(1))
	w.Append(Value(2))

	snap := w.Snapshot()
	snap[0] = Value(99)

	if got := w.Snapshot()[0]; got != Value(1) {
		t.Errorf("window mutated through snapshot: got %+v", got)
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(3)
	for i := 0; i < 5; i++ {
		w.Append(Value(float64(i)))
	}
	w.Reset()
	if w.Len() != 0 || w.Cap() != 3 {
		t.Errorf("after Reset: Len=%d Cap=%d, want 0 and 3", w.Len(), w.Cap())
	}
	w.Append(Value(8))
	if latest, _ := w.Latest(); latest != Value(8) {
		t.Errorf("Latest() = %+v, want 8", latest)
	}
}

func TestCapacityFor(t *testing.T) {
	tests := []struct {
		name     string
		visible  float64
		interval time.Duration
		want     int
	}{
		{"default 500ms", 60, 500 * time.Millisecond, 120},
		{"fastest preset", 60, 100 * time.Millisecond, 600},
		{"slowest preset", 60, 10 * time.Second, 6},
		{"rounds up", 60, 7 * time.Second, 9},
		{"floor of two", 1, 10 * time.Second, 2},
		{"zero interval", 60, 0, 2},
		{"zero visible", 0, time.Second, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapacityFor(tt.visible, tt.interval); got != tt.want {
				t.Errorf("CapacityFor(%v, %v) = %d, want %d", tt.visible, tt.interval, got, tt.want)
			}
		})
	}
}

func TestSamplePresent(t *testing.T) {
	tests := []struct {
		s    Sample
		want bool
	}{
		{Value(1), true},
		{Value(-2), true},
		{Value(0), false},
		{Missing, false},
	}
	for _, tt := range tests {
		if got := tt.s.Present(); got != tt.want {
			t.Errorf("%+v.Present() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
