package engine

import (
	"context"
	"time"

	"github.com/piwi3910/gallerywall/internal/model"
)

// ComparisonResult holds the outcome and computed statistics of one
// algorithm run.
type ComparisonResult struct {
	Algorithm       model.Algorithm
	Solutions       []model.LayoutSolution
	SolutionCount   int
	BestScore       int
	Requested       int
	CoveragePercent float64
	Elapsed         time.Duration
}

// CompareAlgorithms runs every algorithm on the same input and returns the
// results in the order given. Coverage is the share of the available wall
// area covered by the best solution's frames.
func CompareAlgorithms(ctx context.Context, in model.Input, algorithms []model.Algorithm, opts SearchOptions) []ComparisonResult {
	if len(algorithms) == 0 {
		algorithms = model.Algorithms()
	}
	now := opts.withDefaults().Now
	available := AvailableArea(in)

	results := make([]ComparisonResult, 0, len(algorithms))
	for _, alg := range algorithms {
		if ctx.Err() != nil {
			break
		}
		start := now()
		solutions := NewGenerator(alg, opts).Generate(ctx, in)
		elapsed := now().Sub(start)

		res := ComparisonResult{
			Algorithm:     alg,
			Solutions:     solutions,
			SolutionCount: len(solutions),
			Requested:     in.TotalRequested(),
			Elapsed:       elapsed,
		}
		var best *model.LayoutSolution
		for i := range solutions {
			if best == nil || solutions[i].Score > best.Score {
				best = &solutions[i]
			}
		}
		if best != nil {
			res.BestScore = best.Score
			if available > 0 {
				covered := 0.0
				for _, f := range best.Frames {
					covered += f.Width * f.Height
				}
				res.CoveragePercent = covered / available * 100
			}
		}
		results = append(results, res)
	}
	return results
}

// Best returns the result with the highest best score, preferring the
// earlier algorithm on ties. It returns nil when results is empty.
func Best(results []ComparisonResult) *ComparisonResult {
	var best *ComparisonResult
	for i := range results {
		if best == nil || results[i].BestScore > best.BestScore {
			best = &results[i]
		}
	}
	return best
}
