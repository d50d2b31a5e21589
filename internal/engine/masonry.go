package engine

import (
	"context"
	"math/rand/v2"

	"github.com/piwi3910/gallerywall/internal/model"
)

// Masonry packs frames with a free-rectangle packer, filling the wall from
// the top-left corner, then centers the packed block.
type Masonry struct {
	opts SearchOptions
}

// NewMasonry returns a masonry generator bounded by opts.
func NewMasonry(opts SearchOptions) *Masonry {
	return &Masonry{opts: opts}
}

// Generate returns the distinct masonry layouts found for in.
func (m *Masonry) Generate(ctx context.Context, in model.Input) []model.LayoutSolution {
	l := newLayout(in)
	return runSearch(ctx, l, m.opts, searchPlan{
		place: func(pieces []piece, _ *rand.Rand) []model.PlacedFrame {
			return packMasonry(l, pieces)
		},
		seeds:     []orderFunc{byHeightDesc, byAreaDesc, byWidthDesc},
		orderOnly: true,
	})
}

// packMasonry places pieces top-most then left-most and centers the result.
func packMasonry(l *layout, pieces []piece) []model.PlacedFrame {
	packer := newFreeRectPacker(l.bounds, l.obstacles, l.spacing)

	var frames []model.PlacedFrame
	for _, p := range pieces {
		ok, x, y := packer.insert(p.width, p.height)
		if !ok {
			if l.forceAll {
				return nil
			}
			continue
		}
		frames = append(frames, place(p, x, y))
	}
	return recenter(l, frames)
}

// recenter moves the packed block to the middle of the bounds. Centering can
// push frames onto obstacles, so the shifted block is re-validated; when full
// centering loses frames, horizontal-only, vertical-only and no shift are
// tried in turn and the shift that keeps the most frames wins. This departs
// from plain center-then-drop on purpose: Grid keeps that behavior, while
// Masonry prefers an off-center block to losing frames it already packed.
func recenter(l *layout, frames []model.PlacedFrame) []model.PlacedFrame {
	if len(frames) == 0 {
		return frames
	}
	box := boundingBox(frames)
	dx := l.bounds.X + (l.bounds.Width-box.Width)/2 - box.X
	dy := l.bounds.Y + (l.bounds.Height-box.Height)/2 - box.Y

	var best []model.PlacedFrame
	for _, d := range [][2]float64{{dx, dy}, {dx, 0}, {0, dy}, {0, 0}} {
		kept := l.dropInvalid(shift(frames, d[0], d[1]))
		if len(kept) == len(frames) {
			return kept
		}
		if len(kept) > len(best) {
			best = kept
		}
	}
	return best
}

// freeRectPacker maintains the maximal free rectangles of the wall.
// Every placement and obstacle footprint is inflated by the spacing before
// it is cut out, so anything placed later keeps its distance.
type freeRectPacker struct {
	freeRects []model.Rect
	spacing   float64
}

func newFreeRectPacker(bounds model.Rect, obstacles []model.Rect, spacing float64) *freeRectPacker {
	fp := &freeRectPacker{spacing: spacing}
	if bounds.Width > epsilon && bounds.Height > epsilon {
		fp.freeRects = []model.Rect{bounds}
	}
	for _, o := range obstacles {
		fp.cut(o.Inflate(spacing))
	}
	return fp
}

// insert places a w x h piece in the top-most, then left-most free rectangle
// that can hold it. Returns success and position.
func (fp *freeRectPacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	for i, r := range fp.freeRects {
		if w > r.Width+epsilon || h > r.Height+epsilon {
			continue
		}
		if bestIdx < 0 {
			bestIdx = i
			continue
		}
		b := fp.freeRects[bestIdx]
		if r.Y < b.Y-epsilon || (r.Y <= b.Y+epsilon && r.X < b.X-epsilon) {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := fp.freeRects[bestIdx]
	fp.cut(model.Rect{X: chosen.X, Y: chosen.Y, Width: w, Height: h}.Inflate(fp.spacing))
	return true, chosen.X, chosen.Y
}

// cut removes used from every free rectangle it overlaps, replacing each
// with up to four maximal strips, then prunes contained rectangles.
func (fp *freeRectPacker) cut(used model.Rect) {
	next := make([]model.Rect, 0, len(fp.freeRects)+4)
	for _, r := range fp.freeRects {
		if !Intersects(r, used) {
			next = append(next, r)
			continue
		}
		// Left strip (full height of original rect)
		if used.X > r.X+epsilon {
			next = append(next, model.Rect{X: r.X, Y: r.Y, Width: used.X - r.X, Height: r.Height})
		}
		// Right strip (full height of original rect)
		if used.Right() < r.Right()-epsilon {
			next = append(next, model.Rect{X: used.Right(), Y: r.Y, Width: r.Right() - used.Right(), Height: r.Height})
		}
		// Top strip (full width of original rect)
		if used.Y > r.Y+epsilon {
			next = append(next, model.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: used.Y - r.Y})
		}
		// Bottom strip (full width of original rect)
		if used.Bottom() < r.Bottom()-epsilon {
			next = append(next, model.Rect{X: r.X, Y: used.Bottom(), Width: r.Width, Height: r.Bottom() - used.Bottom()})
		}
	}
	fp.freeRects = pruneContained(next)
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the first is kept.
func pruneContained(rects []model.Rect) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if !containsRect(a, b) || j < i {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}
