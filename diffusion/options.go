// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// options.go — functional options for the solvers. Constructors panic on
// meaningless values; solvers never panic.

package diffusion

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Option customizes a solve.
type Option func(*solverConfig)

// WithMaxIterations bounds the number of CG iterations. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("diffusion: WithMaxIterations(%d) < 1", n))
	}
	return func(c *solverConfig) { c.maxIterations = n }
}

// WithAcceptLastIterate returns the last iterate, with Converged == false,
// instead of a *NotConvergedError when the iteration bound is reached.
func WithAcceptLastIterate() Option {
	return func(c *solverConfig) { c.acceptLast = true }
}

// WithConnectivityCheck counts connected components before solving and fails
// fast with ErrDisconnected instead of running CG into its iteration bound.
// Costs up to diameter+1 extra rounds of communication.
func WithConnectivityCheck() Option {
	return func(c *solverConfig) { c.connectivity = true }
}

// WithMetrics records every solve in m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("diffusion: WithMetrics(nil)")
	}
	return func(c *solverConfig) { c.metrics = m }
}

// WithLogger attaches a logger. Only rank 0 logs per-solve summaries.
func WithLogger(l zerolog.Logger) Option {
	return func(c *solverConfig) { c.log = l }
}
