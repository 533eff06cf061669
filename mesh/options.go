// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// options.go — functional options for the generators.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   • Seeding is explicit; the seed is always agreed across workers before use.

package mesh

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Option customizes a generator by mutating a meshConfig before construction.
type Option func(*meshConfig)

// WithSeed fixes the seed of Randomized and the default seed of Clustered.
// Zero means "let rank 0 draw one".
func WithSeed(seed int64) Option {
	return func(c *meshConfig) { c.seed = seed }
}

// WithJitter sets the perturbation bound of Randomized as a fraction of the
// lattice spacing. Panics unless 0 ≤ f < 1.
func WithJitter(f float64) Option {
	if !(f >= 0 && f < 1) {
		panic(fmt.Sprintf("mesh: WithJitter(%v) outside [0,1)", f))
	}
	return func(c *meshConfig) { c.jitter = f }
}

// WithNeighbors sets k of the k-nearest-neighbour graph built by Clustered.
// Panics if k < 1.
func WithNeighbors(k int) Option {
	if k < 1 {
		panic(fmt.Sprintf("mesh: WithNeighbors(%d) < 1", k))
	}
	return func(c *meshConfig) { c.neighbors = k }
}

// WithLeafSize sets the maximum number of points per spatial-tree leaf.
// Panics if size < 1.
func WithLeafSize(size int) Option {
	if size < 1 {
		panic(fmt.Sprintf("mesh: WithLeafSize(%d) < 1", size))
	}
	return func(c *meshConfig) { c.leafSize = size }
}

// WithWeight sets a constant edge weight. Panics unless w is positive and finite.
func WithWeight(w float64) Option {
	fn := ConstantWeightFn(w)
	return func(c *meshConfig) { c.weightFn = fn }
}

// WithWeightFn sets a per-edge weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("mesh: WithWeightFn(nil)")
	}
	return func(c *meshConfig) { c.weightFn = fn }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *meshConfig) { c.log = l }
}

func validWeight(w float64) bool { return w > 0 && !math.IsInf(w, 0) }
