package engine

import (
	"context"

	"github.com/piwi3910/gallerywall/internal/model"
)

// Generator produces distinct layout solutions for one request.
// Implementations never return an error; an empty result means nothing fit.
type Generator interface {
	Generate(ctx context.Context, in model.Input) []model.LayoutSolution
}

// NewGenerator returns the strategy for alg. Unknown algorithms fall back
// to MonteCarlo.
func NewGenerator(alg model.Algorithm, opts SearchOptions) Generator {
	switch alg {
	case model.AlgorithmGrid:
		return NewGrid(opts)
	case model.AlgorithmMasonry:
		return NewMasonry(opts)
	case model.AlgorithmSpiral:
		return NewSpiral(opts)
	case model.AlgorithmSkyline:
		return NewSkyline(opts)
	default:
		return NewMonteCarlo(opts)
	}
}
