package engine

import (
	"context"
	"math/rand/v2"

	"github.com/piwi3910/gallerywall/internal/model"
)

const (
	// monteCarloTries is the number of random positions tried per frame.
	monteCarloTries = 50
	// rotationChance is the probability a frame is tried turned by 90 degrees.
	rotationChance = 0.2
)

// MonteCarlo drops frames at random positions, keeping the first position
// that fits. Results are sorted by score, best first.
type MonteCarlo struct {
	opts SearchOptions
}

// NewMonteCarlo returns a random scatter generator bounded by opts.
func NewMonteCarlo(opts SearchOptions) *MonteCarlo {
	return &MonteCarlo{opts: opts}
}

// Generate returns the distinct scattered layouts found for in, best first.
func (m *MonteCarlo) Generate(ctx context.Context, in model.Input) []model.LayoutSolution {
	l := newLayout(in)
	return runSearch(ctx, l, m.opts, searchPlan{
		place: func(pieces []piece, rng *rand.Rand) []model.PlacedFrame {
			return scatter(l, pieces, rng)
		},
		seeds:       []orderFunc{byAreaDesc, byHeightDesc},
		sortByScore: true,
	})
}

func scatter(l *layout, pieces []piece, rng *rand.Rand) []model.PlacedFrame {
	var placed []model.PlacedFrame
	for _, p := range pieces {
		ok := false
		for try := 0; try < monteCarloTries && !ok; try++ {
			rotated := rng.Float64() < rotationChance
			w, h := p.width, p.height
			if rotated {
				w, h = h, w
			}
			freeW, freeH := l.bounds.Width-w, l.bounds.Height-h
			if freeW < 0 || freeH < 0 {
				continue
			}
			x := l.bounds.X + rng.Float64()*freeW
			y := l.bounds.Y + rng.Float64()*freeH
			if !l.fits(model.Rect{X: x, Y: y, Width: w, Height: h}, placed) {
				continue
			}
			if rotated {
				placed = append(placed, placeRotated(p, x, y))
			} else {
				placed = append(placed, place(p, x, y))
			}
			ok = true
		}
		if !ok && l.forceAll {
			return nil
		}
	}
	return placed
}
