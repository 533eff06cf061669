// SPDX-License-Identifier: MIT

// Package matrix - connected components of a distributed adjacency.
//
// Implementation:
//   - Min-label propagation: every node starts with its own global index and
//     repeatedly takes the smallest label among itself and its neighbours.
//     Neighbour labels arrive through the MatVec halo plan.
//   - A round costs one halo exchange and one reduction; the number of rounds
//     is bounded by the largest component diameter + 1.
//   - On termination a node's label is the smallest index of its component,
//     whatever the distribution.

package matrix

import (
	"github.com/katalvlaran/geomesh/dist"
)

const opComponents = "ConnectedComponents"

// ConnectedComponents labels every owned row of the square matrix m with the
// smallest global index of its connected component and returns the global
// component count. m must be structurally symmetric. Collective.
func ConnectedComponents(c *dist.Comm, m *CSR) (labels []int, count int, err error) {
	if err := checkComm(c, m.d); err != nil {
		return nil, 0, matrixErrorf(opComponents, err)
	}
	if m.Rows() != m.cols {
		return nil, 0, matrixErrorf(opComponents, ErrNonSquare)
	}

	labels = make([]int, m.LocalRows())
	for l := range labels {
		labels[l] = m.GlobalRow(l)
	}
	for {
		ghost, err := haloValues(c, m, labels)
		if err != nil {
			return nil, 0, matrixErrorf(opComponents, err)
		}
		changed := 0
		next := make([]int, len(labels))
		for l := range labels {
			best := labels[l]
			for k := m.rowPtr[l]; k < m.rowPtr[l+1]; k++ {
				if j := m.halo.src[k]; j >= 0 {
					best = min(best, labels[j])
				} else {
					best = min(best, ghost[-j-1])
				}
			}
			if best != labels[l] {
				changed++
			}
			next[l] = best
		}
		labels = next
		total, err := c.AllReduceSumInt(changed)
		if err != nil {
			return nil, 0, matrixErrorf(opComponents, err)
		}
		if total == 0 {
			break
		}
	}

	roots := 0
	for l, lab := range labels {
		if lab == m.GlobalRow(l) {
			roots++
		}
	}
	count, err = c.AllReduceSumInt(roots)
	if err != nil {
		return nil, 0, matrixErrorf(opComponents, err)
	}
	return labels, count, nil
}
