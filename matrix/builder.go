// SPDX-License-Identifier: MIT

// Package matrix - Builder: worker-local assembly of a CSR from triplets.
//
// Contract:
//   - Add accepts only rows owned by the builder's rank (ErrNotOwned) and
//     columns in [0, cols) (ErrOutOfRange); values must be finite.
//   - Build sorts each row by column and sums duplicate (row, col) entries.
//   - Build is deterministic: the result depends only on the multiset of
//     entries added, never on insertion order (up to floating-point summation
//     of duplicates).

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/geomesh/dist"
)

type colVal struct {
	col int
	val float64
}

// Builder accumulates entries for the rows one worker owns.
type Builder struct {
	d    dist.Distribution
	rank int
	cols int
	rows [][]colVal
}

// NewBuilder returns a builder for the rows of rank under d, with cols global
// columns.
func NewBuilder(d dist.Distribution, rank, cols int) *Builder {
	return &Builder{d: d, rank: rank, cols: cols, rows: make([][]colVal, d.LocalSize(rank))}
}

// Add records a_{row,col} += v.
func (b *Builder) Add(row, col int, v float64) error {
	if row < 0 || row >= b.d.GlobalSize() || col < 0 || col >= b.cols {
		return fmt.Errorf("%s: (%d,%d) outside %dx%d: %w", opBuild, row, col, b.d.GlobalSize(), b.cols, ErrOutOfRange)
	}
	if b.d.Owner(row) != b.rank {
		return fmt.Errorf("%s: row %d owned by %d, not %d: %w", opBuild, row, b.d.Owner(row), b.rank, ErrNotOwned)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: (%d,%d)=%v: %w", opBuild, row, col, v, ErrInvalidWeight)
	}
	l := b.d.LocalIndex(row)
	b.rows[l] = append(b.rows[l], colVal{col: col, val: v})
	return nil
}

// AddEntry is Add for a triplet.
func (b *Builder) AddEntry(e Entry) error { return b.Add(e.Row, e.Col, e.Value) }

// Build freezes the builder into a CSR. The builder must not be reused.
func (b *Builder) Build() *CSR {
	m := &CSR{d: b.d, rank: b.rank, cols: b.cols, rowPtr: make([]int, len(b.rows)+1)}
	for l, row := range b.rows {
		slices.SortStableFunc(row, func(x, y colVal) int { return cmp.Compare(x.col, y.col) })
		for k := 0; k < len(row); k++ {
			if k > 0 && row[k].col == m.colIdx[len(m.colIdx)-1] && len(m.colIdx) > m.rowPtr[l] {
				m.vals[len(m.vals)-1] += row[k].val
				continue
			}
			m.colIdx = append(m.colIdx, row[k].col)
			m.vals = append(m.vals, row[k].val)
		}
		m.rowPtr[l+1] = len(m.colIdx)
	}
	b.rows = nil
	return m
}
