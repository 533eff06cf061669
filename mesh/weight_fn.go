// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// weight_fn.go — edge-weight generators.
//
// A WeightFn is evaluated once per stored entry on the worker owning the
// row, i.e. twice per undirected edge on possibly different workers. It must
// therefore be a pure function of the unordered pair (u < v), never of a
// shared RNG stream, or symmetry would be lost.

package mesh

import (
	"fmt"
	"math/rand/v2"
)

// WeightFn returns the weight of edge {u, v} with u < v. Results must be
// positive and finite.
type WeightFn func(u, v int) float64

// ConstantWeightFn returns w for every edge. Panics unless w is positive and finite.
func ConstantWeightFn(w float64) WeightFn {
	if !validWeight(w) {
		panic(fmt.Sprintf("mesh: ConstantWeightFn(%v) must be positive and finite", w))
	}
	return func(int, int) float64 { return w }
}

// UniformWeightFn returns weights uniform in [lo, hi), drawn from a PCG stream
// keyed by seed and the edge, so both endpoints see the same value.
// Panics unless 0 < lo ≤ hi.
func UniformWeightFn(lo, hi float64, seed int64) WeightFn {
	if !validWeight(lo) || !validWeight(hi) || hi < lo {
		panic(fmt.Sprintf("mesh: UniformWeightFn(%v, %v) needs 0 < lo ≤ hi", lo, hi))
	}
	return func(u, v int) float64 {
		r := rand.New(rand.NewPCG(uint64(seed), uint64(u)<<32^uint64(v)))
		return lo + (hi-lo)*r.Float64()
	}
}
