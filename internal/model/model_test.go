package model

import (
	"math"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"grid":        AlgorithmGrid,
		"Masonry":     AlgorithmMasonry,
		"monte-carlo": AlgorithmMonteCarlo,
		" spiral ":    AlgorithmSpiral,
		"SKYLINE":     AlgorithmSkyline,
	}
	for in, want := range cases {
		got, ok := ParseAlgorithm(in)
		if !ok || got != want {
			t.Errorf("ParseAlgorithm(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseAlgorithm("genetic"); ok {
		t.Error("expected unknown algorithm to fail")
	}
}

func TestWallInner(t *testing.T) {
	w := Wall{Width: 200, Height: 100}
	inner := w.Inner(5)
	if inner != (Rect{X: 5, Y: 5, Width: 190, Height: 90}) {
		t.Errorf("unexpected inner rect %+v", inner)
	}
}

func TestRectInflateAndFinite(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 4, Height: 2}
	got := r.Inflate(1)
	if got != (Rect{X: 9, Y: 9, Width: 6, Height: 4}) {
		t.Errorf("unexpected inflated rect %+v", got)
	}
	if !r.IsFinite() {
		t.Error("expected finite rect")
	}
	if (Rect{X: math.NaN()}).IsFinite() {
		t.Error("NaN rect must not be finite")
	}
	if (Rect{Width: math.Inf(1)}).IsFinite() {
		t.Error("Inf rect must not be finite")
	}
}

func TestInputTotalRequested(t *testing.T) {
	in := Input{Inventory: []Frame{
		NewFrame("A", 8, 10, 3),
		NewFrame("B", 5, 7, 2),
		{ID: "neg", Width: 1, Height: 1, Count: -4},
	}}
	if got := in.TotalRequested(); got != 5 {
		t.Errorf("expected 5 requested, got %d", got)
	}
}

func TestNewFrameAndObstacleIDs(t *testing.T) {
	f := NewFrame("A", 8, 10, 1)
	o := NewObstacle("Window", 10, 10, 30, 40)
	if len(f.ID) != 8 || len(o.ID) != 8 {
		t.Errorf("expected 8-char ids, got %q and %q", f.ID, o.ID)
	}
	if o.Rect() != (Rect{X: 10, Y: 10, Width: 30, Height: 40}) {
		t.Errorf("unexpected obstacle rect %+v", o.Rect())
	}
}
