// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// config.go — solver configuration and deterministic defaults.
//
// Deterministic defaults:
//   • maxIterations = n + defaultIterationSlack (resolved per solve)
//   • acceptLast    = false
//   • connectivity  = false (no component count before solving)
//   • metrics       = nil (nothing recorded)
//   • log           = zerolog.Nop()

package diffusion

import "github.com/rs/zerolog"

// defaultIterationSlack is added to n for the default iteration bound; exact
// CG needs at most n-1 steps, the slack absorbs rounding.
const defaultIterationSlack = 100

type solverConfig struct {
	maxIterations int // 0 = n + defaultIterationSlack
	acceptLast    bool
	connectivity  bool
	metrics       *Metrics
	log           zerolog.Logger
}

func newSolverConfig(opts ...Option) solverConfig {
	cfg := solverConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c solverConfig) iterationBound(n int) int {
	if c.maxIterations > 0 {
		return c.maxIterations
	}
	return n + defaultIterationSlack
}
