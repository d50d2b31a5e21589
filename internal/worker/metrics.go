package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallerywall_generations_total",
			Help: "Total number of generation requests by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallerywall_generation_duration_seconds",
			Help:    "Duration of generator runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"algorithm"},
	)

	SolutionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallerywall_solutions_generated_total",
			Help: "Total number of distinct layout solutions produced",
		},
		[]string{"algorithm"},
	)
)

const (
	outcomeSolved     = "solved"
	outcomeEmpty      = "empty"
	outcomeImpossible = "impossible"
	outcomeInvalid    = "invalid"
	outcomePanic      = "panic"
)
