// SPDX-License-Identifier: MIT

// Package matrix - structural post-condition checks.
//
// Purpose:
//   - CheckAdjacency: the contract of an undirected simple weighted graph:
//     square, columns in range, no self-loops, finite positive weights, and
//     a_ij == a_ji exactly for every stored entry.
//   - CheckSymmetric: symmetry within tol only (diagonal and any sign allowed),
//     as required of Laplacians.
//
// Implementation:
//   - Stage 1: local scan of owned rows.
//   - Stage 2: every entry (i,j,v) is mirrored to owner(j) as (j,i,v) with one
//     AllToAll; the receiver looks the mirror up in row j and counts hits per
//     row. A row is symmetric iff every mirror matched and the hit count equals
//     its stored degree.
//   - Stage 3: the failure flag is reduced, so every worker returns an error
//     when any worker found a violation. All stages run even after a local
//     failure so that peers never wait on a missing collective.

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geomesh/dist"
)

// CheckAdjacency validates m as the adjacency matrix of a simple undirected
// weighted graph. Every returned error matches ErrInconsistent.
func CheckAdjacency(c *dist.Comm, m *CSR) error {
	return checkStructure(c, m, opCheckAdjacency, true, 0)
}

// CheckSymmetric validates that m is square and symmetric within tol.
// Every returned error matches ErrInconsistent.
func CheckSymmetric(c *dist.Comm, m *CSR, tol float64) error {
	return checkStructure(c, m, opCheckSymmetric, false, math.Abs(tol))
}

func checkStructure(c *dist.Comm, m *CSR, op string, adjacency bool, tol float64) error {
	if err := checkComm(c, m.d); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInconsistent, err)
	}

	var local error
	fail := func(err error, format string, args ...any) {
		if local == nil {
			local = fmt.Errorf("%s: %s: %w: %w", op, fmt.Sprintf(format, args...), ErrInconsistent, err)
		}
	}

	if m.Rows() != m.cols {
		fail(ErrNonSquare, "%dx%d", m.Rows(), m.cols)
	}

	send := make([][]Entry, c.Size())
	for l := 0; l < m.LocalRows(); l++ {
		i := m.GlobalRow(l)
		cols, vals := m.Row(l)
		for k, j := range cols {
			v := vals[k]
			if j < 0 || j >= m.Rows() {
				fail(ErrOutOfRange, "row %d col %d", i, j)
				continue
			}
			if adjacency {
				if j == i {
					fail(ErrSelfLoop, "node %d", i)
				}
				if !(v > 0) || math.IsInf(v, 0) {
					fail(ErrInvalidWeight, "(%d,%d)=%v", i, j, v)
				}
			}
			to := m.d.Owner(j)
			send[to] = append(send[to], Entry{Row: j, Col: i, Value: v})
		}
	}

	recv, err := dist.AllToAll(c, send)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hits := make([]int, m.LocalRows())
	for _, msg := range recv {
		for _, e := range msg {
			l := m.d.LocalIndex(e.Row)
			v, ok := m.Value(l, e.Col)
			if !ok {
				fail(ErrAsymmetry, "(%d,%d) stored, (%d,%d) missing", e.Col, e.Row, e.Row, e.Col)
				continue
			}
			if math.Abs(v-e.Value) > tol {
				fail(ErrAsymmetry, "(%d,%d)=%v but (%d,%d)=%v", e.Row, e.Col, v, e.Col, e.Row, e.Value)
			}
			hits[l]++
		}
	}
	for l, h := range hits {
		if h != m.Degree(l) {
			fail(ErrAsymmetry, "row %d has %d entries, %d mirrored", m.GlobalRow(l), m.Degree(l), h)
		}
	}

	flag := 0
	if local != nil {
		flag = 1
	}
	global, err := c.AllReduceMaxInt(flag)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if local != nil {
		return local
	}
	if global > 0 {
		return fmt.Errorf("%s: violation reported by another worker: %w", op, ErrInconsistent)
	}
	return nil
}
