// SPDX-License-Identifier: MIT

// Package matrix - distributed sparse matrix–vector product.
//
// Implementation:
//   - Stage 1 (once per matrix): collect the non-owned columns referenced by
//     the local rows, group them by owner, and exchange the request lists
//     (one AllToAll). Every stored entry gets a source slot: a local index
//     into x, or a position in the ghost buffer.
//   - Stage 2 (every product): ship the requested x values (one AllToAll,
//     haloValues), then run the local CSR kernel over owned + ghost values.
//
// Determinism:
//   - Row sums are accumulated in ascending column order, so the result does
//     not depend on the distribution beyond the values of x themselves.

package matrix

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/geomesh/dist"
)

type haloPlan struct {
	src     []int   // per stored entry: ≥0 local index in x, <0 ghost slot -(k+1)
	sendIdx [][]int // per destination rank: local indices of x it asked for
	recvOff []int   // per source rank: first ghost slot of its reply
	ghosts  int
}

func (m *CSR) buildHalo(c *dist.Comm) error {
	p := c.Size()
	want := make([][]int, p)
	seen := make(map[int]struct{})
	for _, col := range m.colIdx {
		if m.d.Owner(col) == m.rank {
			continue
		}
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		want[m.d.Owner(col)] = append(want[m.d.Owner(col)], col)
	}

	plan := &haloPlan{recvOff: make([]int, p), sendIdx: make([][]int, p)}
	slot := make(map[int]int, len(seen))
	for r := 0; r < p; r++ {
		slices.Sort(want[r])
		plan.recvOff[r] = plan.ghosts
		for _, col := range want[r] {
			slot[col] = plan.ghosts
			plan.ghosts++
		}
	}

	asked, err := dist.AllToAll(c, want)
	if err != nil {
		return err
	}
	for r, cols := range asked {
		idx := make([]int, len(cols))
		for k, col := range cols {
			idx[k] = m.d.LocalIndex(col)
		}
		plan.sendIdx[r] = idx
	}

	plan.src = make([]int, len(m.colIdx))
	for k, col := range m.colIdx {
		if m.d.Owner(col) == m.rank {
			plan.src[k] = m.d.LocalIndex(col)
		} else {
			plan.src[k] = -(slot[col] + 1)
		}
	}
	m.halo = plan
	return nil
}

// MatVec returns y = A·x. x must be distributed like the rows of A (square
// operators such as adjacency and Laplacian matrices).
func (m *CSR) MatVec(c *dist.Comm, x *Vector) (*Vector, error) {
	y := NewVector(m.d, m.rank)
	if err := m.MatVecTo(c, y, x); err != nil {
		return nil, err
	}
	return y, nil
}

// MatVecTo writes A·x into y. Collective.
func (m *CSR) MatVecTo(c *dist.Comm, y, x *Vector) error {
	if m.cols != x.d.GlobalSize() {
		return fmt.Errorf("%s: cols=%d, len(x)=%d: %w", opMatVec, m.cols, x.d.GlobalSize(), ErrDimensionMismatch)
	}
	if x.rank != m.rank || !dist.Same(x.d, m.d) || !dist.Same(y.d, m.d) {
		return matrixErrorf(opMatVec, ErrDistributionMismatch)
	}
	if err := checkComm(c, m.d); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	ghost, err := haloValues(c, m, x.data)
	if err != nil {
		return matrixErrorf(opMatVec, err)
	}

	for l := 0; l < m.LocalRows(); l++ {
		var s float64
		for k := m.rowPtr[l]; k < m.rowPtr[l+1]; k++ {
			if j := m.halo.src[k]; j >= 0 {
				s += m.vals[k] * x.data[j]
			} else {
				s += m.vals[k] * ghost[-j-1]
			}
		}
		y.data[l] = s
	}
	return nil
}

// haloValues ships the owned values of x that other workers reference and
// returns the ghost buffer addressed by the halo plan, for any payload type.
// Collective.
func haloValues[T any](c *dist.Comm, m *CSR, x []T) ([]T, error) {
	if m.halo == nil {
		if err := m.buildHalo(c); err != nil {
			return nil, err
		}
	}
	send := make([][]T, c.Size())
	for r, idx := range m.halo.sendIdx {
		vals := make([]T, len(idx))
		for k, l := range idx {
			vals[k] = x[l]
		}
		send[r] = vals
	}
	recv, err := dist.AllToAll(c, send)
	if err != nil {
		return nil, err
	}
	ghost := make([]T, m.halo.ghosts)
	for r, vals := range recv {
		copy(ghost[m.halo.recvOff[r]:], vals)
	}
	return ghost, nil
}
