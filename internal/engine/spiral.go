package engine

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/piwi3910/gallerywall/internal/model"
)

const (
	spiralAngleStep = 0.25 // radians between probes
	spiralGrowth    = 2.0  // radius gained per full turn
)

// Spiral grows a cluster from the wall center, walking an Archimedean
// spiral outward for each frame until it finds a free spot.
type Spiral struct {
	opts SearchOptions
}

// NewSpiral returns a spiral generator bounded by opts.
func NewSpiral(opts SearchOptions) *Spiral {
	return &Spiral{opts: opts}
}

// Generate returns the distinct spiral layouts found for in.
func (s *Spiral) Generate(ctx context.Context, in model.Input) []model.LayoutSolution {
	l := newLayout(in)
	return runSearch(ctx, l, s.opts, searchPlan{
		place: func(pieces []piece, _ *rand.Rand) []model.PlacedFrame {
			return spiralOut(l, pieces)
		},
		seeds:     []orderFunc{byAreaDesc},
		orderOnly: true,
	})
}

// spiralProbes returns the number of probes needed for the spiral radius to
// reach half the wall diagonal.
func spiralProbes(wall model.Rect) int {
	reach := math.Hypot(wall.Width, wall.Height) / 2
	turns := reach / spiralGrowth
	return int(math.Ceil(turns*2*math.Pi/spiralAngleStep)) + 1
}

func spiralOut(l *layout, pieces []piece) []model.PlacedFrame {
	cx := l.wall.X + l.wall.Width/2
	cy := l.wall.Y + l.wall.Height/2
	probes := spiralProbes(l.wall)

	var placed []model.PlacedFrame
	for _, p := range pieces {
		ok := false
		for i := 0; i < probes; i++ {
			angle := float64(i) * spiralAngleStep
			radius := spiralGrowth * angle / (2 * math.Pi)
			x := cx + radius*math.Cos(angle) - p.width/2
			y := cy + radius*math.Sin(angle) - p.height/2
			if l.fits(model.Rect{X: x, Y: y, Width: p.width, Height: p.height}, placed) {
				placed = append(placed, place(p, x, y))
				ok = true
				break
			}
		}
		if !ok && l.forceAll {
			return nil
		}
	}
	return placed
}
