// SPDX-License-Identifier: MIT

// Package matrix - row-distributed compressed sparse row storage.
//
// Purpose:
//   - Keep the owned rows of a global n×m sparse matrix in CSR layout.
//   - Column indices are global and sorted ascending inside each row; values
//     are merged so that each (row, col) appears at most once.
//   - The row distribution is shared read-only; local row l is global row
//     d.GlobalIndex(rank, l).
//
// Complexity quicksheet:
//   - Row: O(1); Value: O(log deg); GlobalNNZ: one reduction.

package matrix

import (
	"slices"

	"github.com/katalvlaran/geomesh/dist"
)

// Entry is one (row, col, value) triplet with global indices.
type Entry struct {
	Row, Col int
	Value    float64
}

// CSR is the worker-local part of a row-distributed sparse matrix.
// The zero value is not usable; construct with a Builder.
type CSR struct {
	d    dist.Distribution
	rank int
	cols int

	rowPtr []int     // len = LocalRows()+1
	colIdx []int     // global columns, ascending per row
	vals   []float64 // aligned with colIdx

	halo *haloPlan // built on first MatVec; depends on the pattern only
}

// Rows is the global row count.
func (m *CSR) Rows() int { return m.d.GlobalSize() }

// Cols is the global column count.
func (m *CSR) Cols() int { return m.cols }

// LocalRows is the number of rows owned by this worker.
func (m *CSR) LocalRows() int { return len(m.rowPtr) - 1 }

// LocalNNZ is the number of stored entries in the owned rows.
func (m *CSR) LocalNNZ() int { return len(m.colIdx) }

// Distribution returns the row distribution.
func (m *CSR) Distribution() dist.Distribution { return m.d }

// Rank is the worker that owns this part.
func (m *CSR) Rank() int { return m.rank }

// GlobalRow maps a local row to its global index.
func (m *CSR) GlobalRow(local int) int { return m.d.GlobalIndex(m.rank, local) }

// Row returns the columns and values of local row l. The slices alias
// internal storage and must not be modified.
func (m *CSR) Row(l int) (cols []int, vals []float64) {
	lo, hi := m.rowPtr[l], m.rowPtr[l+1]
	return m.colIdx[lo:hi:hi], m.vals[lo:hi:hi]
}

// Degree is the number of stored entries in local row l.
func (m *CSR) Degree(l int) int { return m.rowPtr[l+1] - m.rowPtr[l] }

// Value returns entry (local row l, global column col) and whether it is stored.
func (m *CSR) Value(l, col int) (float64, bool) {
	cols, vals := m.Row(l)
	k, ok := slices.BinarySearch(cols, col)
	if !ok {
		return 0, false
	}
	return vals[k], true
}

// Entries returns the owned triplets in local row order.
func (m *CSR) Entries() []Entry {
	out := make([]Entry, 0, m.LocalNNZ())
	for l := 0; l < m.LocalRows(); l++ {
		g := m.GlobalRow(l)
		cols, vals := m.Row(l)
		for k, col := range cols {
			out = append(out, Entry{Row: g, Col: col, Value: vals[k]})
		}
	}
	return out
}

// RowSums returns Σ_j a_ij for every owned row, distributed like the rows.
// For an adjacency matrix this is the weighted degree.
func (m *CSR) RowSums() *Vector {
	out := NewVector(m.d, m.rank)
	for l := range out.data {
		_, vals := m.Row(l)
		var s float64
		for _, v := range vals {
			s += v
		}
		out.data[l] = s
	}
	return out
}

// Diagonal returns a_ii for every owned row (0 when not stored).
func (m *CSR) Diagonal() *Vector {
	out := NewVector(m.d, m.rank)
	for l := range out.data {
		if v, ok := m.Value(l, m.GlobalRow(l)); ok {
			out.data[l] = v
		}
	}
	return out
}

// GlobalNNZ returns the number of stored entries over all workers.
func (m *CSR) GlobalNNZ(c *dist.Comm) (int, error) {
	return c.AllReduceSumInt(m.LocalNNZ())
}
