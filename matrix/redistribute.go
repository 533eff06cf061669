// SPDX-License-Identifier: MIT

// Package matrix - row redistribution.
//
// Contract:
//   - Every owned row is shipped to its owner under the new distribution
//     (one AllToAll); global values are preserved exactly.
//   - The result is new storage; the source matrix stays valid and unchanged.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/geomesh/dist"
)

// Redistribute returns a copy of m whose rows are laid out by nd.
func (m *CSR) Redistribute(c *dist.Comm, nd dist.Distribution) (*CSR, error) {
	if err := checkComm(c, nd); err != nil {
		return nil, matrixErrorf(opRedistribute, err)
	}
	if nd.GlobalSize() != m.Rows() {
		return nil, fmt.Errorf("%s: rows %d → %d: %w", opRedistribute, m.Rows(), nd.GlobalSize(), ErrDimensionMismatch)
	}

	send := make([][]Entry, c.Size())
	for _, e := range m.Entries() {
		to := nd.Owner(e.Row)
		send[to] = append(send[to], e)
	}
	recv, err := dist.AllToAll(c, send)
	if err != nil {
		return nil, matrixErrorf(opRedistribute, err)
	}

	b := NewBuilder(nd, c.Rank(), m.cols)
	for _, msg := range recv {
		for _, e := range msg {
			if err := b.AddEntry(e); err != nil {
				return nil, matrixErrorf(opRedistribute, err)
			}
		}
	}
	return b.Build(), nil
}
