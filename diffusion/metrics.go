// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// metrics.go — Prometheus instrumentation of the solver.
//
// Every worker runs the same iterations, so only rank 0 records; the numbers
// describe the collective solve, not per-worker work.

package diffusion

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Solve outcomes used as the "outcome" label.
const (
	OutcomeConverged    = "converged"
	OutcomeAccepted     = "accepted_last_iterate"
	OutcomeNotConverged = "not_converged"
)

// Metrics groups the solver collectors.
type Metrics struct {
	solves     *prometheus.CounterVec
	iterations prometheus.Histogram
	duration   prometheus.Histogram
}

// NewMetrics creates the solver collectors and registers them with reg.
// Panics if registration fails, like promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "geomesh_diffusion_solves_total",
			Help: "Single-source diffusion solves by outcome",
		}, []string{"outcome"}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "geomesh_diffusion_iterations",
			Help:    "CG iterations per single-source solve",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "geomesh_diffusion_solve_duration_seconds",
			Help:    "Wall time of a single-source solve",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observe(outcome string, iterations int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(outcome).Inc()
	m.iterations.Observe(float64(iterations))
	m.duration.Observe(elapsed.Seconds())
}
