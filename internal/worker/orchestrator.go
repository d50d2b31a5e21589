package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/gallerywall/internal/engine"
	"github.com/piwi3910/gallerywall/internal/model"
)

// DefaultMaxEmitted is the number of solutions forwarded per request.
const DefaultMaxEmitted = 10

// Request size limits. Every requested copy and every shelf is allocated
// before the search budget applies.
const (
	MaxRequestedFrames = 10000
	MaxShelfCount      = 100
)

// ErrInvalidInput marks requests whose numbers cannot describe a layout.
var ErrInvalidInput = errors.New("invalid input")

// GeneratorFactory builds the strategy for an algorithm.
type GeneratorFactory func(alg model.Algorithm, opts engine.SearchOptions) engine.Generator

// Orchestrator runs one generation request and reports it as a message
// stream. It is the only place where a failing generator is turned into
// an ERROR message.
type Orchestrator struct {
	Logger       *log.Logger
	NewGenerator GeneratorFactory
	MaxEmitted   int
	Options      engine.SearchOptions
}

// NewOrchestrator returns an orchestrator using the built-in strategies.
func NewOrchestrator(logger *log.Logger, opts engine.SearchOptions) *Orchestrator {
	return &Orchestrator{
		Logger:       logger,
		NewGenerator: engine.NewGenerator,
		MaxEmitted:   DefaultMaxEmitted,
		Options:      opts,
	}
}

func (o *Orchestrator) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// RunGeneration emits up to MaxEmitted solutions for in, in generator order,
// followed by DONE carrying the total number generated. Empty inventories
// and forceAll requests that cannot fit by area finish with DONE 0 without
// running a generator. Invalid numbers, oversized requests and generator
// panics end the stream with ERROR instead of DONE.
func (o *Orchestrator) RunGeneration(ctx context.Context, in model.Input, emit func(Response)) {
	logger := o.logger()
	alg := in.Config.Algorithm

	if !hasRequestedFrames(in) {
		logger.Debug("empty inventory, nothing to place")
		GenerationsTotal.WithLabelValues(string(alg), outcomeEmpty).Inc()
		emit(done(0))
		return
	}
	if err := Validate(in); err != nil {
		logger.Warn("rejecting request", "err", err)
		GenerationsTotal.WithLabelValues(string(alg), outcomeInvalid).Inc()
		emit(failure(err.Error()))
		return
	}
	if in.Config.ForceAll && engine.IsPhysicallyImpossible(in) {
		logger.Info("requested frames exceed available wall area", "available", engine.AvailableArea(in))
		GenerationsTotal.WithLabelValues(string(alg), outcomeImpossible).Inc()
		emit(done(0))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("generation panicked", "algorithm", alg, "panic", r)
			GenerationsTotal.WithLabelValues(string(alg), outcomePanic).Inc()
			emit(failure(fmt.Sprintf("generation failed: %v", r)))
		}
	}()

	factory := o.NewGenerator
	if factory == nil {
		factory = engine.NewGenerator
	}
	gen := factory(alg, o.Options)

	start := time.Now()
	solutions := gen.Generate(ctx, in)
	elapsed := time.Since(start)
	GenerationDuration.WithLabelValues(string(alg)).Observe(elapsed.Seconds())
	SolutionsGenerated.WithLabelValues(string(alg)).Add(float64(len(solutions)))
	GenerationsTotal.WithLabelValues(string(alg), outcomeSolved).Inc()

	logger.Info("generation finished",
		"algorithm", alg,
		"requested", in.TotalRequested(),
		"solutions", len(solutions),
		"elapsed", elapsed.Round(time.Millisecond))

	limit := o.MaxEmitted
	if limit <= 0 {
		limit = DefaultMaxEmitted
	}
	for i, sol := range solutions {
		if i >= limit {
			break
		}
		emit(solutionFound(sol))
	}
	emit(done(len(solutions)))
}

// Validate rejects walls, frames and spacings that would produce non-finite
// or meaningless coordinates, and requests above the size limits.
func Validate(in model.Input) error {
	if !finitePositive(in.Wall.Width) || !finitePositive(in.Wall.Height) {
		return fmt.Errorf("%w: wall must have a positive finite size, got %vx%v", ErrInvalidInput, in.Wall.Width, in.Wall.Height)
	}
	if !finite(in.Config.Spacing) || !finite(in.Config.Margin) {
		return fmt.Errorf("%w: spacing and margin must be finite", ErrInvalidInput)
	}
	if in.Config.ShelfCount > MaxShelfCount {
		return fmt.Errorf("%w: at most %d shelves, got %d", ErrInvalidInput, MaxShelfCount, in.Config.ShelfCount)
	}
	requested := 0
	for _, f := range in.Inventory {
		if !finiteNonNegative(f.Width) || !finiteNonNegative(f.Height) {
			return fmt.Errorf("%w: frame %q must have a finite non-negative size, got %vx%v", ErrInvalidInput, f.Label, f.Width, f.Height)
		}
		if f.Count <= 0 {
			continue
		}
		if f.Count > MaxRequestedFrames-requested {
			return fmt.Errorf("%w: at most %d frames per request", ErrInvalidInput, MaxRequestedFrames)
		}
		requested += f.Count
	}
	for _, o := range in.Obstacles {
		if !o.Rect().IsFinite() {
			return fmt.Errorf("%w: obstacle %q has non-finite geometry", ErrInvalidInput, o.Label)
		}
	}
	return nil
}

func hasRequestedFrames(in model.Input) bool {
	for _, f := range in.Inventory {
		if f.Count > 0 {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePositive(v float64) bool {
	return finite(v) && v > 0
}

func finiteNonNegative(v float64) bool {
	return finite(v) && v >= 0
}
