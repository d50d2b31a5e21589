package engine

import (
	"context"
	"math/rand/v2"

	"github.com/piwi3910/gallerywall/internal/model"
)

// Grid arranges frames in centered rows.
type Grid struct {
	opts SearchOptions
}

// NewGrid returns a grid generator bounded by opts.
func NewGrid(opts SearchOptions) *Grid {
	return &Grid{opts: opts}
}

// Generate returns the distinct grid layouts found for in.
func (g *Grid) Generate(ctx context.Context, in model.Input) []model.LayoutSolution {
	l := newLayout(in)
	return runSearch(ctx, l, g.opts, searchPlan{
		place: func(pieces []piece, _ *rand.Rand) []model.PlacedFrame {
			return packGrid(l, pieces)
		},
		seeds:     []orderFunc{inputOrder, byHeightDesc, byAreaDesc},
		orderOnly: true,
	})
}

type gridRow struct {
	pieces []piece
	width  float64
	height float64
}

// packGrid fills rows left to right, wrapping when the next piece would
// overflow the bounds width, and stops once a row no longer fits vertically.
// Rows are centered as a block, each row horizontally and each frame
// vertically within its row. Obstacles are ignored while packing; frames
// that end up on an obstacle are dropped afterwards.
func packGrid(l *layout, pieces []piece) []model.PlacedFrame {
	var rows []gridRow
	var cur gridRow
	usedH := 0.0

	commit := func() bool {
		if len(cur.pieces) == 0 {
			return true
		}
		need := cur.height
		if len(rows) > 0 {
			need += l.spacing
		}
		if usedH+need > l.bounds.Height+epsilon {
			return false
		}
		usedH += need
		rows = append(rows, cur)
		cur = gridRow{}
		return true
	}

	full := false
	for _, p := range pieces {
		if p.width > l.bounds.Width+epsilon {
			if l.forceAll {
				return nil
			}
			continue
		}
		add := p.width
		if len(cur.pieces) > 0 {
			add += l.spacing
			if cur.width+add > l.bounds.Width+epsilon {
				if !commit() {
					full = true
					break
				}
				add = p.width
			}
		}
		cur.pieces = append(cur.pieces, p)
		cur.width += add
		cur.height = max(cur.height, p.height)
	}
	if !full {
		commit()
	}

	var frames []model.PlacedFrame
	y := l.bounds.Y + (l.bounds.Height-usedH)/2
	for _, row := range rows {
		x := l.bounds.X + (l.bounds.Width-row.width)/2
		for _, p := range row.pieces {
			frames = append(frames, place(p, x, y+(row.height-p.height)/2))
			x += p.width + l.spacing
		}
		y += row.height + l.spacing
	}

	kept := l.dropInvalid(frames)
	if l.forceAll && len(kept) != len(pieces) {
		return nil
	}
	return kept
}
