package chart

import (
	"reflect"
	"testing"
)

// samples builds a sample slice from optional values; nil entries are missing.
func samples(vals ...*float64) []Sample {
	out := make([]Sample, len(vals))
	for i, v := range vals {
		if v != nil {
			out[i] = Value(*v)
		}
	}
	return out
}

func f(v float64) *float64 { return &v }

func TestSmooth(t *testing.T) {
	tests := []struct {
		name string
		in   []Sample
		mode Smoothing
		want []float64
	}{
		{"none passes values", samples(f(1), f(2), f(3)), SmoothNone, []float64{1, 2, 3}},
		{"none zeroes missing", samples(f(1), nil, f(3)), SmoothNone, []float64{1, 0, 3}},
		{"none empty", nil, SmoothNone, []float64{}},

		{"average interior", samples(f(10), f(20), f(30)), SmoothAverage, []float64{15, 20, 25}},
		{"average skips missing", samples(f(5), nil, f(7)), SmoothAverage, []float64{5, 6, 7}},
		{"average all missing", samples(nil, nil), SmoothAverage, []float64{0, 0}},
		{"average keeps zeros", samples(f(0), f(6), f(0)), SmoothAverage, []float64{3, 2, 3}},
		{"average single sample", samples(f(4)), SmoothAverage, []float64{4}},

		{"round flattens spike", samples(f(1), f(10), f(1)), SmoothRound, []float64{1, 1, 1}},
		{"round flattens uneven spike", samples(f(10), f(100), f(12)), SmoothRound, []float64{10, 11, 12}},
		{"round keeps ramp", samples(f(10), f(20), f(30)), SmoothRound, []float64{10, 20, 30}},
		{"round keeps endpoints", samples(f(90), f(1), f(1), f(90)), SmoothRound, []float64{90, 1, 1, 90}},
		{"round skips missing neighbour", samples(f(1), nil, f(1)), SmoothRound, []float64{1, 0, 1}},
		{"round short input", samples(f(1), f(50)), SmoothRound, []float64{1, 50}},

		{"unknown mode behaves as none", samples(f(1), nil), Smoothing(42), []float64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smooth(tt.in, tt.mode)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Smooth(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestSmoothPreservesLength(t *testing.T) {
	in := samples(f(3), nil, f(9), f(1), nil, nil, f(7))
	for _, mode := range []Smoothing{SmoothNone, SmoothAverage, SmoothRound} {
		if got := Smooth(in, mode); len(got) != len(in) {
			t.Errorf("Smooth(%v) len = %d, want %d", mode, len(got), len(in))
		}
	}
}

func TestParseSmoothing(t *testing.T) {
	tests := []struct {
		in      string
		want    Smoothing
		wantErr bool
	}{
		{"none", SmoothNone, false},
		{"average", SmoothAverage, false},
		{"round", SmoothRound, false},
		{" Round ", SmoothRound, false},
		{"spline", SmoothNone, true},
		{"", SmoothNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSmoothing(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSmoothing(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSmoothing(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSmoothingNextCycles(t *testing.T) {
	mode := SmoothNone
	seen := []Smoothing{mode}
	for i := 0; i < 3; i++ {
		mode = mode.Next()
		seen = append(seen, mode)
	}
	want := []Smoothing{SmoothNone, SmoothAverage, SmoothRound, SmoothNone}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("cycle = %v, want %v", seen, want)
	}
}

func TestSmoothingText(t *testing.T) {
	var s Smoothing
	if err := s.UnmarshalText([]byte("average")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if s != SmoothAverage {
		t.Errorf("UnmarshalText = %v, want average", s)
	}
	text, err := SmoothRound.MarshalText()
	if err != nil || string(text) != "round" {
		t.Errorf("MarshalText = %q, %v; want round", text, err)
	}
	if _, err := Smoothing(9).MarshalText(); err == nil {
		t.Error("MarshalText of unknown mode should fail")
	}
}
