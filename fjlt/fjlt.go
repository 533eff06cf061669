// SPDX-License-Identifier: MIT
// Package: geomesh/fjlt
//
// fjlt.go — construction and application of the transform.
//
// Streams (all PCG keyed by the seed):
//   • stream 1: the d' signs of D;
//   • stream 2: P, row-major, one Bernoulli(q) draw per slot and one normal
//     draw per non-zero.

package fjlt

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const methodNew = "New"

// targetConstant is c in k = ⌈c·ln n / ε²⌉.
const targetConstant = 2

// TargetDimension returns ⌈2·ln n / ε²⌉, the number of rows a transform for
// n points needs at distortion epsilon. It does not validate its inputs.
func TargetDimension(epsilon float64, n int) int {
	return int(math.Ceil(targetConstant * math.Log(float64(n)) / (epsilon * epsilon)))
}

// validate checks the parameters and returns the target dimension.
func validate(method string, epsilon float64, n, origDimension int) (int, error) {
	if !(epsilon > 0 && epsilon < 1) {
		return 0, fmt.Errorf("%s: epsilon=%v: %w", method, epsilon, ErrBadEpsilon)
	}
	if n < 2 || origDimension < 1 {
		return 0, fmt.Errorf("%s: n=%d, origDimension=%d: %w", method, n, origDimension, ErrBadDimension)
	}
	k := TargetDimension(epsilon, n)
	if k >= origDimension {
		return 0, fmt.Errorf("%s: k=%d, origDimension=%d: %w", method, k, origDimension, ErrNoReduction)
	}
	return k, nil
}

// sparseEntry is one non-zero of P.
type sparseEntry struct {
	col int
	val float64
}

// Transform is an immutable FJLT from origDimension to k dimensions.
type Transform struct {
	k, orig, padded int
	seed            int64
	density         float64
	signs           []float64       // diagonal of D, len padded
	rows            [][]sparseEntry // P, already scaled by 1/√k
}

// New builds the transform for n points of dimension origDimension.
// Without WithSeed a random seed is drawn; Seed reports it.
func New(epsilon float64, n, origDimension int, opts ...Option) (*Transform, error) {
	cfg := newConfig(opts...)
	k, err := validate(methodNew, epsilon, n, origDimension)
	if err != nil {
		return nil, err
	}

	seed := cfg.seed
	for seed == 0 {
		seed = rand.Int64()
	}
	padded := nextPow2(origDimension)
	logN := math.Log(float64(n))
	q := math.Min(1, logN*logN/float64(padded))

	t := &Transform{k: k, orig: origDimension, padded: padded, seed: seed, density: q}

	signs := rand.New(rand.NewPCG(uint64(seed), 1))
	t.signs = make([]float64, padded)
	for i := range t.signs {
		t.signs[i] = 1
		if signs.Uint64()&1 == 1 {
			t.signs[i] = -1
		}
	}

	sampler := rand.New(rand.NewPCG(uint64(seed), 2))
	normal := distuv.Normal{Mu: 0, Sigma: 1 / math.Sqrt(q)}
	scale := 1 / math.Sqrt(float64(k))
	nnz := 0
	t.rows = make([][]sparseEntry, k)
	for i := range t.rows {
		for j := 0; j < padded; j++ {
			if sampler.Float64() >= q {
				continue
			}
			u := (float64(sampler.Uint64()>>11) + 0.5) / (1 << 53)
			t.rows[i] = append(t.rows[i], sparseEntry{col: j, val: scale * normal.Quantile(u)})
		}
		nnz += len(t.rows[i])
	}

	cfg.log.Debug().Int("k", k).Int("origDimension", origDimension).Int("padded", padded).
		Float64("density", q).Int("nnz", nnz).Int64("seed", seed).Msg("fjlt built")
	return t, nil
}

// Rows is the target dimension k.
func (t *Transform) Rows() int { return t.k }

// Cols is origDimension.
func (t *Transform) Cols() int { return t.orig }

// Seed returns the seed the transform was built from.
func (t *Transform) Seed() int64 { return t.seed }

// Density returns q, the probability of a non-zero in P.
func (t *Transform) Density() float64 { return t.density }

// Matrix returns M as a dense k×origDimension matrix.
// Cost O(nnz(P)·origDimension).
func (t *Transform) Matrix() *mat.Dense {
	m := mat.NewDense(t.k, t.orig, nil)
	norm := 1 / math.Sqrt(float64(t.padded))
	row := make([]float64, t.orig)
	for i, entries := range t.rows {
		clear(row)
		for _, e := range entries {
			for j := range row {
				// H[l][j] = (-1)^popcount(l&j) in Sylvester order.
				h := 1.0
				if parity(e.col & j) {
					h = -1
				}
				row[j] += e.val * h
			}
		}
		for j := range row {
			row[j] *= norm * t.signs[j]
		}
		m.SetRow(i, row)
	}
	return m
}

// Apply returns M·x for len(x) == origDimension. x is not modified.
func (t *Transform) Apply(x []float64) ([]float64, error) {
	if len(x) != t.orig {
		return nil, fmt.Errorf("Apply: len(x)=%d, origDimension=%d: %w", len(x), t.orig, ErrBadDimension)
	}
	y := make([]float64, t.padded)
	for j, v := range x {
		y[j] = v * t.signs[j]
	}
	fwht(y)
	norm := 1 / math.Sqrt(float64(t.padded))

	out := make([]float64, t.k)
	for i, entries := range t.rows {
		var s float64
		for _, e := range entries {
			s += e.val * y[e.col]
		}
		out[i] = s * norm
	}
	return out, nil
}

// Matrix builds a transform and returns its dense k×origDimension matrix.
func Matrix(epsilon float64, n, origDimension int, opts ...Option) (*mat.Dense, error) {
	t, err := New(epsilon, n, origDimension, opts...)
	if err != nil {
		return nil, err
	}
	return t.Matrix(), nil
}

func parity(v int) bool { return bits.OnesCount(uint(v))&1 == 1 }
