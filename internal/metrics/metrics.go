// Package metrics exposes the server's prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_solves_total",
		Help: "Solve requests by variant and outcome.",
	}, []string{"variant", "outcome"})

	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sudoku_solve_duration_seconds",
		Help:    "Wall-clock time per solve.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	SearchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sudoku_search_nodes",
		Help:    "Search nodes per solve.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)

// Handler serves the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
