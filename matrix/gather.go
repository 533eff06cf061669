// SPDX-License-Identifier: MIT

// Package matrix - single global views of a distributed matrix.
//
// These are for verification and small hand-offs; they replicate O(nnz)
// data on every worker.

package matrix

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/geomesh/dist"
)

// GatherEntries returns all stored entries of m on every worker, sorted by
// (row, col). The result is independent of the row distribution.
func GatherEntries(c *dist.Comm, m *CSR) ([]Entry, error) {
	parts, err := dist.AllGather(c, m.Entries())
	if err != nil {
		return nil, matrixErrorf(opGather, err)
	}
	var out []Entry
	for _, p := range parts {
		out = append(out, p...)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if r := cmp.Compare(a.Row, b.Row); r != 0 {
			return r
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return out, nil
}

// GatherGraph returns the undirected weighted graph described by a symmetric
// adjacency matrix, with one node per row (node ID = global row). Only the
// upper triangle is read; diagonal entries are ignored.
func GatherGraph(c *dist.Comm, m *CSR) (*simple.WeightedUndirectedGraph, error) {
	entries, err := GatherEntries(c, m)
	if err != nil {
		return nil, err
	}
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < m.Rows(); i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range entries {
		if e.Col <= e.Row {
			continue
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(e.Row), simple.Node(e.Col), e.Value))
	}
	return g, nil
}
