// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// config.go — internal configuration and deterministic defaults.
//
// Design:
//   • meshConfig is the single source of truth for all generator knobs.
//   • newMeshConfig applies options in order (later overrides earlier).
//
// Deterministic defaults:
//   • seed      = 0        (AgreeSeed lets rank 0 draw one)
//   • jitter    = DefaultJitter
//   • neighbors = 0        (resolved to 2*dims by Clustered)
//   • leafSize  = DefaultLeafSize
//   • weightFn  = constant DefaultEdgeWeight
//   • log       = zerolog.Nop()

package mesh

import "github.com/rs/zerolog"

// meshConfig aggregates all knobs used by generators. Passed by value.
type meshConfig struct {
	seed      int64
	jitter    float64
	neighbors int
	leafSize  int
	weightFn  WeightFn
	log       zerolog.Logger
}

func newMeshConfig(opts ...Option) meshConfig {
	cfg := meshConfig{
		jitter:   DefaultJitter,
		leafSize: DefaultLeafSize,
		weightFn: ConstantWeightFn(DefaultEdgeWeight),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// edgeWeight evaluates the configured weight on the unordered pair {u, v}.
func (c meshConfig) edgeWeight(u, v int) float64 {
	if u > v {
		u, v = v, u
	}
	return c.weightFn(u, v)
}
