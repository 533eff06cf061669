// SPDX-License-Identifier: MIT
// Package: geomesh/laplacian
//
// laplacian.go — L = D - A over the rows a worker owns.
//
// Contract:
//   • Off-diagonal: L_ij = -a_ij.
//   • Diagonal:     L_ii = Σ_{j≠i} a_ij (a stored a_ii is not counted, the
//     adjacency contract forbids it anyway).
//   • Zero-degree rows stay empty.
//
// Complexity: O(nnz_local log deg) time, O(nnz_local) space, no communication.

package laplacian

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

const (
	methodBuild        = "Build"
	methodCheckRowSums = "CheckRowSums"
)

// Build returns the Laplacian of the square adjacency adj with the same row
// distribution. It needs no communication.
func Build(adj *matrix.CSR) (*matrix.CSR, error) {
	if adj == nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, ErrNilAdjacency)
	}
	if adj.Rows() != adj.Cols() {
		return nil, fmt.Errorf("%s: %dx%d: %w", methodBuild, adj.Rows(), adj.Cols(), matrix.ErrNonSquare)
	}

	b := matrix.NewBuilder(adj.Distribution(), adj.Rank(), adj.Cols())
	for l := 0; l < adj.LocalRows(); l++ {
		i := adj.GlobalRow(l)
		cols, vals := adj.Row(l)
		var deg float64
		for k, j := range cols {
			if j == i {
				continue
			}
			deg += vals[k]
			if err := b.Add(i, j, -vals[k]); err != nil {
				return nil, fmt.Errorf("%s: %w", methodBuild, err)
			}
		}
		if len(cols) == 0 {
			continue
		}
		if err := b.Add(i, i, deg); err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuild, err)
		}
	}
	return b.Build(), nil
}

// Degrees returns the weighted degree of every owned node of adj, laid out
// like its rows.
func Degrees(adj *matrix.CSR) *matrix.Vector {
	deg := adj.RowSums()
	diag := adj.Diagonal()
	for l, v := range diag.Local() {
		deg.Local()[l] -= v
	}
	return deg
}

// CheckRowSums verifies that every row of lap sums to zero within tol,
// relative to the magnitude of the diagonal. Every worker returns the same
// verdict.
func CheckRowSums(c *dist.Comm, lap *matrix.CSR, tol float64) error {
	sums, diag := lap.RowSums(), lap.Diagonal()
	var local error
	for l, s := range sums.Local() {
		scale := math.Max(1, math.Abs(diag.Local()[l]))
		if !(math.Abs(s) <= tol*scale) && local == nil {
			local = fmt.Errorf("%s: row %d sums to %g: %w", methodCheckRowSums, lap.GlobalRow(l), s, ErrRowSum)
		}
	}

	flag := 0
	if local != nil {
		flag = 1
	}
	global, err := c.AllReduceMaxInt(flag)
	if err != nil {
		return fmt.Errorf("%s: %w", methodCheckRowSums, err)
	}
	if local != nil {
		return local
	}
	if global > 0 {
		return fmt.Errorf("%s: reported by another worker: %w", methodCheckRowSums, ErrRowSum)
	}
	return nil
}
