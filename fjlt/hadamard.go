// SPDX-License-Identifier: MIT
// Package: geomesh/fjlt
//
// hadamard.go — Sylvester Hadamard matrices and the fast transform.

package fjlt

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

const methodHadamard = "Hadamard"

func isPow2(d int) bool { return d > 0 && d&(d-1) == 0 }

func nextPow2(d int) int {
	if d <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(d-1))
}

// Hadamard returns the d×d Hadamard matrix built by doubling:
// H(1) = [1], H(2m) = [[H(m), H(m)], [H(m), -H(m)]]. Entries are ±1 and
// H·Hᵀ = d·I. d must be a power of two.
func Hadamard(d int) (*mat.Dense, error) {
	if !isPow2(d) {
		return nil, fmt.Errorf("%s: d=%d is not a power of two: %w", methodHadamard, d, ErrBadDimension)
	}
	h := mat.NewDense(d, d, nil)
	h.Set(0, 0, 1)
	for m := 1; m < d; m *= 2 {
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				v := h.At(i, j)
				h.Set(i, j+m, v)
				h.Set(i+m, j, v)
				h.Set(i+m, j+m, -v)
			}
		}
	}
	return h, nil
}

// fwht applies the unnormalized Hadamard transform to x in place;
// len(x) must be a power of two.
func fwht(x []float64) {
	for h := 1; h < len(x); h *= 2 {
		for i := 0; i < len(x); i += 2 * h {
			for j := i; j < i+h; j++ {
				a, b := x[j], x[j+h]
				x[j], x[j+h] = a+b, a-b
			}
		}
	}
}
