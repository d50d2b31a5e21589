package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Rect is an axis-aligned rectangle. Origin is top-left, y grows downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }
func (r Rect) Area() float64   { return r.Width * r.Height }

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// IsFinite reports whether every coordinate is a finite number.
func (r Rect) IsFinite() bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Wall is the bounding rectangle frames are hung on, in inches.
type Wall struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Rect returns the full wall rectangle anchored at the origin.
func (w Wall) Rect() Rect {
	return Rect{Width: w.Width, Height: w.Height}
}

// Inner returns the wall rectangle reduced by margin on every side.
func (w Wall) Inner(margin float64) Rect {
	return Rect{X: margin, Y: margin, Width: w.Width - 2*margin, Height: w.Height - 2*margin}
}

// Obstacle is a fixed no-placement zone on the wall (window, outlet, switch).
type Obstacle struct {
	ID     string  `json:"id,omitempty" toml:"id,omitempty"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

func NewObstacle(label string, x, y, w, h float64) Obstacle {
	return Obstacle{
		ID:     uuid.New().String()[:8],
		Label:  label,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	}
}

func (o Obstacle) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// Frame is an inventory item: a frame size and how many copies are requested.
type Frame struct {
	ID     string  `json:"id" toml:"id,omitempty"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Count  int     `json:"count" toml:"count"`
}

func NewFrame(label string, w, h float64, count int) Frame {
	return Frame{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Count:  count,
	}
}

func (f Frame) Area() float64 { return f.Width * f.Height }

// Algorithm names a packing strategy.
type Algorithm string

const (
	AlgorithmGrid       Algorithm = "grid"        // Row packing, centered block
	AlgorithmMasonry    Algorithm = "masonry"     // Free-rectangle packing
	AlgorithmMonteCarlo Algorithm = "monte_carlo" // Random placement with retries
	AlgorithmSpiral     Algorithm = "spiral"      // Outward spiral from the wall center
	AlgorithmSkyline    Algorithm = "skyline"     // Balanced rows on horizontal shelves
)

// Algorithms returns every known strategy in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmGrid,
		AlgorithmMasonry,
		AlgorithmMonteCarlo,
		AlgorithmSpiral,
		AlgorithmSkyline,
	}
}

// ParseAlgorithm matches a strategy name case-insensitively. Dashes are
// accepted in place of underscores.
func ParseAlgorithm(s string) (Algorithm, bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, a := range Algorithms() {
		if string(a) == norm {
			return a, true
		}
	}
	return "", false
}

// LayoutConfig holds the constraints of one generation request.
type LayoutConfig struct {
	Spacing    float64   `json:"spacing" toml:"spacing"`                  // Minimum gap between frames, and frames and obstacles
	Margin     float64   `json:"margin" toml:"margin"`                    // Minimum gap from the wall edges
	Algorithm  Algorithm `json:"algorithm" toml:"algorithm"`              // Strategy to run
	ForceAll   bool      `json:"forceAll" toml:"force_all"`               // Only accept layouts that place every copy
	ShelfCount int       `json:"shelfCount,omitempty" toml:"shelf_count"` // Skyline only
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Spacing:    2.0,
		Margin:     6.0,
		Algorithm:  AlgorithmMasonry,
		ForceAll:   false,
		ShelfCount: 3,
	}
}

// PlacedFrame is one concrete placement inside a solution.
type PlacedFrame struct {
	ID        string  `json:"id"`
	LibraryID string  `json:"libraryId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`  // Final width, swapped when Rotation is 90
	Height    float64 `json:"height"` // Final height, swapped when Rotation is 90
	Rotation  int     `json:"rotation"`
}

func (p PlacedFrame) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// LayoutSolution is one candidate arrangement. Score is the number of frames placed.
type LayoutSolution struct {
	ID     string        `json:"id"`
	Frames []PlacedFrame `json:"frames"`
	Score  int           `json:"score"`
}

// Input is everything a generator needs for one request.
type Input struct {
	Wall      Wall         `json:"wall" toml:"wall"`
	Inventory []Frame      `json:"inventory" toml:"inventory"`
	Obstacles []Obstacle   `json:"obstacles" toml:"obstacles"`
	Config    LayoutConfig `json:"config" toml:"config"`
}

// TotalRequested sums the requested copies over the inventory.
func (in Input) TotalRequested() int {
	total := 0
	for _, f := range in.Inventory {
		if f.Count > 0 {
			total += f.Count
		}
	}
	return total
}

// ObstacleRects returns the obstacle rectangles in input order.
func (in Input) ObstacleRects() []Rect {
	rects := make([]Rect, len(in.Obstacles))
	for i, o := range in.Obstacles {
		rects[i] = o.Rect()
	}
	return rects
}
