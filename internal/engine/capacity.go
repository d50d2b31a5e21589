package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/gallerywall/internal/model"
)

// packingEfficiency is the share of free wall area rectangles realistically cover.
const packingEfficiency = 0.85

// AvailableArea returns the margin-reduced wall area minus the obstacle areas.
func AvailableArea(in model.Input) float64 {
	inner := in.Wall.Inner(in.Config.Margin)
	if inner.Width <= 0 || inner.Height <= 0 {
		return 0
	}
	area := inner.Area()
	for _, o := range in.Obstacles {
		area -= o.Width * o.Height
	}
	return area
}

// IsPhysicallyImpossible reports whether the requested frame area strictly
// exceeds the available wall area. It is a necessary condition only: false
// does not mean every frame fits.
func IsPhysicallyImpossible(in model.Input) bool {
	var requested float64
	for _, f := range in.Inventory {
		if f.Count > 0 {
			requested += f.Width * f.Height * float64(f.Count)
		}
	}
	return requested > AvailableArea(in)
}

// EstimateMaxCapacity estimates how many frames fit by greedily filling the
// efficiency-adjusted available area with the smallest spacing-inflated frames.
// The result never exceeds the number of requested copies. Copies of one
// inventory item are taken together, so the cost does not grow with counts.
func EstimateMaxCapacity(in model.Input) int {
	budget := AvailableArea(in) * packingEfficiency
	if !(budget > 0) {
		return 0
	}

	type group struct {
		area  float64
		count int
	}
	s := in.Config.Spacing
	groups := make([]group, 0, len(in.Inventory))
	for _, f := range in.Inventory {
		a := (f.Width + s) * (f.Height + s)
		if f.Count <= 0 || math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			continue
		}
		groups = append(groups, group{area: a, count: f.Count})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].area < groups[j].area })

	count := 0
	used := 0.0
	for _, g := range groups {
		take := g.count
		if g.area > 0 {
			fit := max(math.Floor((budget-used)/g.area*(1+epsilon)), 0)
			if fit < float64(take) {
				take = int(fit)
			}
		}
		count += take
		used += float64(take) * g.area
		if take < g.count {
			break
		}
	}
	return count
}
