package engine

import (
	"context"
	"math/rand/v2"

	"github.com/piwi3910/gallerywall/internal/model"
)

const (
	defaultShelfCount = 3
	shelfSlideStep    = 2.0
	shelfSlideTries   = 50
)

// Skyline hangs frames from horizontal shelf lines. The bounds are split
// into ShelfCount+1 equal bands; a shelf line runs along the top of every
// band except the first and frames hang below it.
type Skyline struct {
	opts SearchOptions
}

// NewSkyline returns a shelf generator bounded by opts.
func NewSkyline(opts SearchOptions) *Skyline {
	return &Skyline{opts: opts}
}

// Generate returns the distinct shelf layouts found for in.
func (s *Skyline) Generate(ctx context.Context, in model.Input) []model.LayoutSolution {
	l := newLayout(in)
	return runSearch(ctx, l, s.opts, searchPlan{
		place: func(pieces []piece, _ *rand.Rand) []model.PlacedFrame {
			return hangOnShelves(l, pieces)
		},
		seeds:     []orderFunc{byHeightDesc},
		orderOnly: true,
	})
}

type shelf struct {
	y        float64
	headroom float64
	width    float64
	pieces   []piece
}

func newShelves(l *layout) []shelf {
	n := l.in.Config.ShelfCount
	if n <= 0 {
		n = defaultShelfCount
	}
	band := l.bounds.Height / float64(n+1)
	shelves := make([]shelf, n)
	for i := range shelves {
		shelves[i].y = l.bounds.Y + float64(i+1)*band
		shelves[i].headroom = band - l.spacing
		if i == n-1 {
			shelves[i].headroom = band
		}
	}
	return shelves
}

// hangOnShelves assigns every piece to the least-filled shelf with enough
// headroom (the lowest shelf when none has), centers each shelf's row and
// slides a frame right while it collides.
func hangOnShelves(l *layout, pieces []piece) []model.PlacedFrame {
	shelves := newShelves(l)
	for _, p := range pieces {
		best := -1
		for i, s := range shelves {
			if s.headroom+epsilon < p.height {
				continue
			}
			if best < 0 || s.width < shelves[best].width {
				best = i
			}
		}
		if best < 0 {
			best = len(shelves) - 1
		}
		s := &shelves[best]
		if len(s.pieces) > 0 {
			s.width += l.spacing
		}
		s.width += p.width
		s.pieces = append(s.pieces, p)
	}

	var placed []model.PlacedFrame
	for _, s := range shelves {
		x := max(l.bounds.X+(l.bounds.Width-s.width)/2, l.bounds.X)
		for _, p := range s.pieces {
			ok := false
			for try := 0; try < shelfSlideTries; try++ {
				r := model.Rect{X: x, Y: s.y, Width: p.width, Height: p.height}
				if r.Right() > l.bounds.Right()+epsilon {
					break
				}
				if l.fits(r, placed) {
					placed = append(placed, place(p, r.X, r.Y))
					x = r.Right() + l.spacing
					ok = true
					break
				}
				x += shelfSlideStep
			}
			if !ok && l.forceAll {
				return nil
			}
		}
	}
	return placed
}
