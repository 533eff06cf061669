// SPDX-License-Identifier: MIT

// Package matrix - Vector: the owned slice of a dense, row-distributed vector.
//
// Local kernels delegate to gonum/floats; global reductions add exactly one
// collective each.

package matrix

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/geomesh/dist"
)

// Vector is the worker-local part of a dense global vector.
type Vector struct {
	d    dist.Distribution
	rank int
	data []float64
}

// NewVector returns a zero vector distributed by d, local part of rank.
func NewVector(d dist.Distribution, rank int) *Vector {
	return &Vector{d: d, rank: rank, data: make([]float64, d.LocalSize(rank))}
}

// NewVectorFunc returns a vector with entry i = fn(i) for every owned global i.
func NewVectorFunc(d dist.Distribution, rank int, fn func(global int) float64) *Vector {
	v := NewVector(d, rank)
	for l := range v.data {
		v.data[l] = fn(d.GlobalIndex(rank, l))
	}
	return v
}

// Len is the global length.
func (v *Vector) Len() int { return v.d.GlobalSize() }

// Local exposes the owned values in local order; mutation is allowed.
func (v *Vector) Local() []float64 { return v.data }

// Distribution returns the vector distribution.
func (v *Vector) Distribution() dist.Distribution { return v.d }

// Rank is the owning worker.
func (v *Vector) Rank() int { return v.rank }

// At returns the value of owned global index i.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= v.d.GlobalSize() || v.d.Owner(i) != v.rank {
		return 0, fmt.Errorf("Vector.At(%d): %w", i, ErrNotOwned)
	}
	return v.data[v.d.LocalIndex(i)], nil
}

// Clone returns an independent copy.
func (v *Vector) Clone() *Vector {
	return &Vector{d: v.d, rank: v.rank, data: append([]float64(nil), v.data...)}
}

// Fill sets every owned entry to x.
func (v *Vector) Fill(x float64) {
	for i := range v.data {
		v.data[i] = x
	}
}

// Scale multiplies every entry by alpha.
func (v *Vector) Scale(alpha float64) { floats.Scale(alpha, v.data) }

// AddConst adds x to every owned entry.
func (v *Vector) AddConst(x float64) { floats.AddConst(x, v.data) }

// AddScaled computes v += alpha*y.
func (v *Vector) AddScaled(alpha float64, y *Vector) error {
	if err := sameLayout(v, y); err != nil {
		return matrixErrorf(opAddScaled, err)
	}
	floats.AddScaled(v.data, alpha, y.data)
	return nil
}

// Dot returns the global inner product <v, y>.
func (v *Vector) Dot(c *dist.Comm, y *Vector) (float64, error) {
	if err := sameLayout(v, y); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	return c.AllReduceSum(floats.Dot(v.data, y.data))
}

// Norm2 returns the global Euclidean norm.
func (v *Vector) Norm2(c *dist.Comm) (float64, error) {
	ss, err := c.AllReduceSum(floats.Dot(v.data, v.data))
	if err != nil {
		return 0, err
	}
	return math.Sqrt(ss), nil
}

// Sum returns the global sum of the entries.
func (v *Vector) Sum(c *dist.Comm) (float64, error) {
	return c.AllReduceSum(floats.Sum(v.data))
}

// Range returns the global minimum and maximum. Workers without owned
// entries do not contribute.
func (v *Vector) Range(c *dist.Comm) (lo, hi float64, err error) {
	local := [3]float64{math.Inf(1), math.Inf(-1), 0}
	if len(v.data) > 0 {
		local = [3]float64{floats.Min(v.data), floats.Max(v.data), 1}
	}
	parts, err := dist.AllGather(c, local)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range parts {
		if p[2] == 0 {
			continue
		}
		lo, hi = math.Min(lo, p[0]), math.Max(hi, p[1])
	}
	return lo, hi, nil
}

// Gather returns the full global vector on every worker.
func (v *Vector) Gather(c *dist.Comm) ([]float64, error) {
	if err := checkComm(c, v.d); err != nil {
		return nil, matrixErrorf(opGather, err)
	}
	// v.data stays writable by its owner once Gather returns; peers read a copy.
	parts, err := dist.AllGather(c, slices.Clone(v.data))
	if err != nil {
		return nil, matrixErrorf(opGather, err)
	}
	out := make([]float64, v.d.GlobalSize())
	for src, part := range parts {
		for l, x := range part {
			out[v.d.GlobalIndex(src, l)] = x
		}
	}
	return out, nil
}

// Redistribute returns a copy of v laid out by nd. Values are preserved.
func (v *Vector) Redistribute(c *dist.Comm, nd dist.Distribution) (*Vector, error) {
	if err := checkComm(c, nd); err != nil {
		return nil, matrixErrorf(opRedistribute, err)
	}
	if nd.GlobalSize() != v.d.GlobalSize() {
		return nil, fmt.Errorf("%s: size %d → %d: %w", opRedistribute, v.d.GlobalSize(), nd.GlobalSize(), ErrDimensionMismatch)
	}
	send := make([][]Entry, c.Size())
	for l, x := range v.data {
		g := v.d.GlobalIndex(v.rank, l)
		to := nd.Owner(g)
		send[to] = append(send[to], Entry{Row: g, Value: x})
	}
	recv, err := dist.AllToAll(c, send)
	if err != nil {
		return nil, matrixErrorf(opRedistribute, err)
	}
	out := NewVector(nd, c.Rank())
	for _, msg := range recv {
		for _, e := range msg {
			out.data[nd.LocalIndex(e.Row)] = e.Value
		}
	}
	return out, nil
}

// sameLayout reports ErrDistributionMismatch unless a and b are co-distributed.
func sameLayout(a, b *Vector) error {
	if a.rank != b.rank || len(a.data) != len(b.data) || !dist.Same(a.d, b.d) {
		return ErrDistributionMismatch
	}
	return nil
}

// checkComm verifies that d spreads over exactly the workers of c.
func checkComm(c *dist.Comm, d dist.Distribution) error {
	if d.Workers() != c.Size() {
		return fmt.Errorf("distribution over %d workers, group of %d: %w", d.Workers(), c.Size(), ErrDistributionMismatch)
	}
	return nil
}
