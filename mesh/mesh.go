// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// mesh.go — the Mesh value shared by all generators, plus redistribution and
// post-condition helpers.

package mesh

import (
	"fmt"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

// Mesh is one worker's part of a generated graph and its coordinates.
// Adjacency rows and every Coords[k] share the same distribution.
type Mesh struct {
	Dims      int
	Adjacency *matrix.CSR
	Coords    []*matrix.Vector // one per axis
	MaxCoord  []float64        // extent per axis
}

// Distribution returns the row distribution of the mesh.
func (m *Mesh) Distribution() dist.Distribution { return m.Adjacency.Distribution() }

// Redistribute moves adjacency and coordinates to nd together and re-checks
// the adjacency. The receiver is left untouched.
func (m *Mesh) Redistribute(c *dist.Comm, nd dist.Distribution) (*Mesh, error) {
	adj, err := m.Adjacency.Redistribute(c, nd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodRedistribute, err)
	}
	out := &Mesh{Dims: m.Dims, Adjacency: adj, MaxCoord: append([]float64(nil), m.MaxCoord...)}
	for _, x := range m.Coords {
		moved, err := x.Redistribute(c, nd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", MethodRedistribute, err)
		}
		out.Coords = append(out.Coords, moved)
	}
	if err := matrix.CheckAdjacency(c, adj); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodRedistribute, err)
	}
	return out, nil
}

// CheckCoordinates verifies that every coordinate lies in [0, MaxCoord[k]].
// The verdict is identical on every worker.
func (m *Mesh) CheckCoordinates(c *dist.Comm) error {
	var local error
	for k, x := range m.Coords {
		for l, v := range x.Local() {
			if !(v >= 0 && v <= m.MaxCoord[k]) && local == nil {
				g := x.Distribution().GlobalIndex(x.Rank(), l)
				local = fmt.Errorf("node %d axis %d: %v not in [0,%v]: %w", g, k, v, m.MaxCoord[k], ErrCoordinateRange)
			}
		}
	}
	flag := 0
	if local != nil {
		flag = 1
	}
	global, err := c.AllReduceMaxInt(flag)
	if err != nil {
		return err
	}
	if local != nil {
		return local
	}
	if global > 0 {
		return fmt.Errorf("reported by another worker: %w", ErrCoordinateRange)
	}
	return nil
}

// GatherCoordinates returns all coordinates on every worker, indexed
// [node][axis].
func (m *Mesh) GatherCoordinates(c *dist.Comm) ([][]float64, error) {
	axes := make([][]float64, len(m.Coords))
	for k, x := range m.Coords {
		all, err := x.Gather(c)
		if err != nil {
			return nil, err
		}
		axes[k] = all
	}
	out := make([][]float64, m.Adjacency.Rows())
	for i := range out {
		out[i] = make([]float64, len(axes))
		for k := range axes {
			out[i][k] = axes[k][i]
		}
	}
	return out, nil
}

// DegreeHistogram returns, on every worker, the global number of nodes per
// degree: hist[d] = |{i : deg(i) = d}|. Costs two reductions.
func DegreeHistogram(c *dist.Comm, adj *matrix.CSR) ([]int, error) {
	maxDeg := 0
	for l := 0; l < adj.LocalRows(); l++ {
		maxDeg = max(maxDeg, adj.Degree(l))
	}
	maxDeg, err := c.AllReduceMaxInt(maxDeg)
	if err != nil {
		return nil, err
	}
	local := make([]float64, maxDeg+1)
	for l := 0; l < adj.LocalRows(); l++ {
		local[adj.Degree(l)]++
	}
	sums, err := c.AllReduceSums(local)
	if err != nil {
		return nil, err
	}
	hist := make([]int, len(sums))
	for d, s := range sums {
		hist[d] = int(s)
	}
	return hist, nil
}

// finish runs the shared post-condition and logs the outcome.
func finish(c *dist.Comm, method string, cfg meshConfig, m *Mesh) (*Mesh, error) {
	if err := matrix.CheckAdjacency(c, m.Adjacency); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	nnz, err := m.Adjacency.GlobalNNZ(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if c.Rank() == 0 {
		cfg.log.Info().
			Str("method", method).
			Int("dims", m.Dims).
			Int("nodes", m.Adjacency.Rows()).
			Int("edges", nnz/2).
			Str("distribution", m.Distribution().String()).
			Msg("mesh generated")
	}
	return m, nil
}
