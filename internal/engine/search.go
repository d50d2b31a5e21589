package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/gallerywall/internal/model"
)

const (
	// DefaultTimeBudget is the wall-clock budget of one randomized search.
	DefaultTimeBudget = 5 * time.Second
	// DefaultMaxAttempts caps the randomized passes of one search.
	DefaultMaxAttempts = 100000
	// DefaultTargetSolutions stops the search once this many satisfactory
	// solutions were accepted.
	DefaultTargetSolutions = 10

	// satisfactoryRatio is the share of the estimated capacity a solution
	// must place to count as satisfactory.
	satisfactoryRatio = 0.9
)

// SearchOptions bounds the randomized search run by every generator.
type SearchOptions struct {
	TimeBudget      time.Duration
	MaxAttempts     int
	TargetSolutions int
	Seed            uint64           // 0 seeds from the clock
	Now             func() time.Time // Monotonic clock, time.Now when nil
}

// DefaultSearchOptions returns the production search budget.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		TimeBudget:      DefaultTimeBudget,
		MaxAttempts:     DefaultMaxAttempts,
		TargetSolutions: DefaultTargetSolutions,
	}
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.TimeBudget <= 0 {
		o.TimeBudget = DefaultTimeBudget
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.TargetSolutions <= 0 {
		o.TargetSolutions = DefaultTargetSolutions
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o SearchOptions) newRand() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// piece is one copy of an inventory frame waiting to be placed.
type piece struct {
	libraryID string
	width     float64
	height    float64
}

func (p piece) area() float64 { return p.width * p.height }

// expandInventory turns counted inventory items into individual pieces.
// Items without a usable positive size are skipped.
func expandInventory(inv []model.Frame) []piece {
	var pieces []piece
	for _, f := range inv {
		if !(f.Width > 0 && f.Height > 0) || math.IsInf(f.Width, 0) || math.IsInf(f.Height, 0) {
			continue
		}
		for i := 0; i < f.Count; i++ {
			pieces = append(pieces, piece{libraryID: f.ID, width: f.Width, height: f.Height})
		}
	}
	return pieces
}

// orderFunc returns the pieces in the order a deterministic seed pass uses.
type orderFunc func([]piece) []piece

func inputOrder(p []piece) []piece { return p }

func byHeightDesc(p []piece) []piece {
	sort.SliceStable(p, func(i, j int) bool { return p[i].height > p[j].height })
	return p
}

func byAreaDesc(p []piece) []piece {
	sort.SliceStable(p, func(i, j int) bool { return p[i].area() > p[j].area() })
	return p
}

func byWidthDesc(p []piece) []piece {
	sort.SliceStable(p, func(i, j int) bool { return p[i].width > p[j].width })
	return p
}

// placeFunc lays out pieces in the given order and returns the placements.
type placeFunc func(pieces []piece, rng *rand.Rand) []model.PlacedFrame

// searchPlan describes how one strategy runs inside the shared search loop.
type searchPlan struct {
	place placeFunc
	seeds []orderFunc
	// orderOnly marks placements that are a pure function of the piece
	// order, so orders already tried can be skipped.
	orderOnly bool
	// sortByScore orders the result by score, best first.
	sortByScore bool
}

// runSearch evaluates the deterministic seeds, then shuffles the pieces until
// the target count of satisfactory solutions is reached or the time budget,
// attempt cap or context runs out.
func runSearch(ctx context.Context, l *layout, opts SearchOptions, plan searchPlan) []model.LayoutSolution {
	opts = opts.withDefaults()
	pieces := expandInventory(l.in.Inventory)
	if len(pieces) == 0 {
		return nil
	}

	// Under forceAll every requested copy counts, including copies
	// expandInventory could not turn into pieces.
	total := len(pieces)
	if l.forceAll {
		total = l.in.TotalRequested()
	}

	rng := opts.newRand()
	set := newSolutionSet(l, total, passingThreshold(l.in, total), opts.TargetSolutions)
	tried := make(map[string]bool)
	distinct := distinctOrders(pieces, opts.MaxAttempts+len(plan.seeds))

	for _, seed := range plan.seeds {
		ordered := seed(append([]piece(nil), pieces...))
		if plan.orderOnly {
			key := orderKey(ordered)
			if tried[key] {
				continue
			}
			tried[key] = true
		}
		set.add(plan.place(ordered, rng))
	}

	start := opts.Now()
	shuffled := append([]piece(nil), pieces...)
	for attempts := 0; !set.enough(); attempts++ {
		if attempts >= opts.MaxAttempts || opts.Now().Sub(start) >= opts.TimeBudget || ctx.Err() != nil {
			break
		}
		if plan.orderOnly && len(tried) >= distinct {
			break
		}
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if plan.orderOnly {
			key := orderKey(shuffled)
			if tried[key] {
				continue
			}
			tried[key] = true
		}
		set.add(plan.place(append([]piece(nil), shuffled...), rng))
	}

	if plan.sortByScore {
		sort.SliceStable(set.solutions, func(i, j int) bool {
			return set.solutions[i].Score > set.solutions[j].Score
		})
	}
	return set.solutions
}

// passingThreshold returns the score a solution needs to count as satisfactory.
func passingThreshold(in model.Input, total int) int {
	if in.Config.ForceAll {
		return total
	}
	t := int(math.Floor(satisfactoryRatio * float64(EstimateMaxCapacity(in))))
	if t < 1 {
		t = 1
	}
	if t > total {
		t = total
	}
	return t
}

// orderKey identifies a piece order by geometry only; two orders with the
// same size sequence produce the same layout.
func orderKey(pieces []piece) string {
	buf := make([]byte, 0, len(pieces)*12)
	for _, p := range pieces {
		buf = strconv.AppendFloat(buf, p.width, 'g', -1, 64)
		buf = append(buf, 'x')
		buf = strconv.AppendFloat(buf, p.height, 'g', -1, 64)
		buf = append(buf, ';')
	}
	return string(buf)
}

// distinctOrders counts the distinguishable orderings of pieces (a multinomial
// coefficient over equal sizes), saturating at limit.
func distinctOrders(pieces []piece, limit int) int {
	type size struct{ w, h float64 }
	groups := make(map[size]int)
	for _, p := range pieces {
		groups[size{p.width, p.height}]++
	}
	total, m := 1, 0
	for _, c := range groups {
		for j := 1; j <= c; j++ {
			m++
			if total > limit/m {
				return limit
			}
			total = total * m / j
		}
	}
	return min(total, limit)
}

// Signature canonicalizes a solution's frame positions: frames are sorted in
// row-major order on rounded coordinates and joined as "x,y,w,h".
func Signature(frames []model.PlacedFrame) string {
	type key struct{ x, y, w, h int64 }
	keys := make([]key, len(frames))
	for i, f := range frames {
		keys[i] = key{
			x: int64(math.Round(f.X)),
			y: int64(math.Round(f.Y)),
			w: int64(math.Round(f.Width)),
			h: int64(math.Round(f.Height)),
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		if keys[i].x != keys[j].x {
			return keys[i].x < keys[j].x
		}
		if keys[i].w != keys[j].w {
			return keys[i].w < keys[j].w
		}
		return keys[i].h < keys[j].h
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.FormatInt(k.x, 10) + "," + strconv.FormatInt(k.y, 10) + "," +
			strconv.FormatInt(k.w, 10) + "," + strconv.FormatInt(k.h, 10)
	}
	return strings.Join(parts, "|")
}

// solutionSet accumulates accepted solutions and rejects repeats.
type solutionSet struct {
	layout       *layout
	total        int
	threshold    int
	target       int
	satisfactory int
	seen         map[string]bool
	solutions    []model.LayoutSolution
}

func newSolutionSet(l *layout, total, threshold, target int) *solutionSet {
	return &solutionSet{
		layout:    l,
		total:     total,
		threshold: threshold,
		target:    target,
		seen:      make(map[string]bool),
	}
}

// add accepts a candidate when it is non-empty, complete under forceAll,
// geometrically valid and not seen before. Accepted solutions and their
// frames receive fresh ids.
func (s *solutionSet) add(frames []model.PlacedFrame) bool {
	frames = finiteFrames(frames)
	if len(frames) == 0 {
		return false
	}
	if s.layout.forceAll && len(frames) != s.total {
		return false
	}
	if !s.layout.valid(frames) {
		return false
	}
	sig := Signature(frames)
	if s.seen[sig] {
		return false
	}
	s.seen[sig] = true

	for i := range frames {
		frames[i].ID = uuid.NewString()
	}
	s.solutions = append(s.solutions, model.LayoutSolution{
		ID:     uuid.NewString(),
		Frames: frames,
		Score:  len(frames),
	})
	if len(frames) >= s.threshold {
		s.satisfactory++
	}
	return true
}

func (s *solutionSet) enough() bool {
	return s.satisfactory >= s.target
}

// finiteFrames drops placements with non-finite coordinates.
func finiteFrames(frames []model.PlacedFrame) []model.PlacedFrame {
	kept := make([]model.PlacedFrame, 0, len(frames))
	for _, f := range frames {
		if f.Rect().IsFinite() {
			kept = append(kept, f)
		}
	}
	return kept
}
