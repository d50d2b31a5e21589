package engine

import "github.com/piwi3910/gallerywall/internal/model"

// epsilon absorbs floating-point drift so rectangles that touch after
// arithmetic are not treated as overlapping.
const epsilon = 1e-6

// Intersects returns true if two rectangles overlap. Rectangles that only
// share an edge do not intersect.
func Intersects(a, b model.Rect) bool {
	return a.X < b.X+b.Width-epsilon && a.X+a.Width > b.X+epsilon &&
		a.Y < b.Y+b.Height-epsilon && a.Y+a.Height > b.Y+epsilon
}

// IsWithinBounds returns true if r lies entirely inside bounds.
func IsWithinBounds(r, bounds model.Rect) bool {
	return r.X >= bounds.X-epsilon && r.Y >= bounds.Y-epsilon &&
		r.X+r.Width <= bounds.X+bounds.Width+epsilon &&
		r.Y+r.Height <= bounds.Y+bounds.Height+epsilon
}

// HasCollision inflates candidate and every rectangle in others by gap/2 and
// reports whether any pair overlaps. Two rectangles at least gap apart along
// either axis never collide.
func HasCollision(candidate model.Rect, others []model.Rect, gap float64) bool {
	half := gap / 2
	c := candidate.Inflate(half)
	for _, o := range others {
		if Intersects(c, o.Inflate(half)) {
			return true
		}
	}
	return false
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner model.Rect) bool {
	return IsWithinBounds(inner, outer)
}

// boundingBox returns the smallest rectangle enclosing every placed frame.
func boundingBox(frames []model.PlacedFrame) model.Rect {
	if len(frames) == 0 {
		return model.Rect{}
	}
	minX, minY := frames[0].X, frames[0].Y
	maxX, maxY := frames[0].X+frames[0].Width, frames[0].Y+frames[0].Height
	for _, f := range frames[1:] {
		minX = min(minX, f.X)
		minY = min(minY, f.Y)
		maxX = max(maxX, f.X+f.Width)
		maxY = max(maxY, f.Y+f.Height)
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func frameRects(frames []model.PlacedFrame) []model.Rect {
	rects := make([]model.Rect, len(frames))
	for i, f := range frames {
		rects[i] = f.Rect()
	}
	return rects
}
