package engine

import "github.com/piwi3910/gallerywall/internal/model"

// layout holds the read-only request geometry shared by every placement pass.
type layout struct {
	in        model.Input
	wall      model.Rect
	bounds    model.Rect // Wall reduced by the margin
	obstacles []model.Rect
	spacing   float64
	forceAll  bool
}

func newLayout(in model.Input) *layout {
	return &layout{
		in:        in,
		wall:      in.Wall.Rect(),
		bounds:    in.Wall.Inner(in.Config.Margin),
		obstacles: in.ObstacleRects(),
		spacing:   in.Config.Spacing,
		forceAll:  in.Config.ForceAll,
	}
}

// fits reports whether r is inside the bounds and keeps the spacing from
// every obstacle and every frame already placed.
func (l *layout) fits(r model.Rect, placed []model.PlacedFrame) bool {
	if !IsWithinBounds(r, l.bounds) {
		return false
	}
	if HasCollision(r, l.obstacles, l.spacing) {
		return false
	}
	half := l.spacing / 2
	c := r.Inflate(half)
	for _, p := range placed {
		if Intersects(c, p.Rect().Inflate(half)) {
			return false
		}
	}
	return true
}

// valid checks the solution invariants: every frame in bounds, clear of the
// obstacles and of every other frame by the spacing.
func (l *layout) valid(frames []model.PlacedFrame) bool {
	for i, f := range frames {
		if !l.fits(f.Rect(), frames[i+1:]) {
			return false
		}
	}
	return true
}

// dropInvalid keeps frames, in order, that fit next to the frames kept so far.
func (l *layout) dropInvalid(frames []model.PlacedFrame) []model.PlacedFrame {
	kept := make([]model.PlacedFrame, 0, len(frames))
	for _, f := range frames {
		if l.fits(f.Rect(), kept) {
			kept = append(kept, f)
		}
	}
	return kept
}

// shift translates every frame by dx, dy.
func shift(frames []model.PlacedFrame, dx, dy float64) []model.PlacedFrame {
	moved := make([]model.PlacedFrame, len(frames))
	for i, f := range frames {
		f.X += dx
		f.Y += dy
		moved[i] = f
	}
	return moved
}

func place(p piece, x, y float64) model.PlacedFrame {
	return model.PlacedFrame{
		LibraryID: p.libraryID,
		X:         x,
		Y:         y,
		Width:     p.width,
		Height:    p.height,
	}
}

func placeRotated(p piece, x, y float64) model.PlacedFrame {
	return model.PlacedFrame{
		LibraryID: p.libraryID,
		X:         x,
		Y:         y,
		Width:     p.height,
		Height:    p.width,
		Rotation:  90,
	}
}
