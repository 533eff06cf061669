// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// impl_clustered.go — clustered point cloud with a k-nearest-neighbour graph.
//
// Canonical model:
//   • numberOfAreas centres uniform in [0, maxCoord]^dims.
//   • pointsPerArea points per area, each axis ~ N(centre, σ) clamped to the
//     box, σ = maxCoord / (4·numberOfAreas^(1/dims)). Node i belongs to area
//     i / pointsPerArea.
//   • Edge {i, j} iff j is among the k nearest neighbours of i or vice versa
//     (k = WithNeighbors, default 2·dims), found through the spatial tree.
//
// Determinism & distribution:
//   • The seed is agreed first; centres and per-area points come from PCG
//     streams keyed by (seed, area), so every worker regenerates the very
//     same cloud and tree.
//   • Each worker queries only its owned nodes and routes the reverse edges
//     to their owners in one AllToAll; rows are the union of both sets.
//
// Complexity:
//   • Tree: O(n log n) per worker. Queries: O(n_local · k log n) expected.

package mesh

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

// openUnit draws from the open interval (0, 1), suitable for Quantile.
func openUnit(rng *rand.Rand) float64 {
	return (float64(rng.Uint64()>>11) + 0.5) / (1 << 53)
}

// clusterCloud regenerates the full point cloud from the agreed seed.
func clusterCloud(dims, areas, perArea int, maxCoord float64, seed int64) []r3.Vec {
	sigma := maxCoord / (4 * math.Pow(float64(areas), 1/float64(dims)))
	box := distuv.Uniform{Min: 0, Max: maxCoord}
	centres := rand.New(rand.NewPCG(uint64(seed), 0))

	pts := make([]r3.Vec, 0, areas*perArea)
	for a := 0; a < areas; a++ {
		var ctr [MaxDims]float64
		for k := 0; k < dims; k++ {
			ctr[k] = box.Quantile(openUnit(centres))
		}
		local := rand.New(rand.NewPCG(uint64(seed), uint64(a)+1))
		for j := 0; j < perArea; j++ {
			var p [MaxDims]float64
			for k := 0; k < dims; k++ {
				v := distuv.Normal{Mu: ctr[k], Sigma: sigma}.Quantile(openUnit(local))
				p[k] = min(max(v, 0), maxCoord)
			}
			pts = append(pts, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		}
	}
	return pts
}

// Clustered generates numberOfAreas·pointsPerArea nodes in dims dimensions
// (2 or 3) inside [0, maxCoord]^dims and connects them by a symmetric kNN graph.
// A zero seed falls back to WithSeed, then to a seed drawn by rank 0.
// It must be called by every worker of c.
func Clustered(c *dist.Comm, d dist.Distribution, dims, numberOfAreas, pointsPerArea int, maxCoord float64, seed int64, opts ...Option) (*Mesh, error) {
	cfg := newMeshConfig(opts...)
	if err := validateDims(MethodClustered, dims); err != nil {
		return nil, err
	}
	if numberOfAreas < 1 || pointsPerArea < 1 {
		return nil, fmt.Errorf("%s: numberOfAreas=%d, pointsPerArea=%d: %w",
			MethodClustered, numberOfAreas, pointsPerArea, ErrTooFewPoints)
	}
	if err := validateExtent(MethodClustered, 0, maxCoord); err != nil {
		return nil, err
	}
	n := numberOfAreas * pointsPerArea
	if err := validateLayout(MethodClustered, c, d, n); err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = cfg.seed
	}
	seed, err := dist.AgreeSeed(c, seed, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodClustered, err)
	}

	pts := clusterCloud(dims, numberOfAreas, pointsPerArea, maxCoord, seed)
	top := r3.Vec{X: maxCoord, Y: maxCoord}
	if dims == 3 {
		top.Z = maxCoord
	}
	tree := newSpatialTree(pts, dims, r3.Vec{}, top, cfg.leafSize)

	k := cfg.neighbors
	if k == 0 {
		k = 2 * dims
	}
	k = min(k, n-1)

	rank := c.Rank()
	owned := dist.Owned(d, rank)
	rows := make([][]int, len(owned))
	send := make([][]matrix.Entry, c.Size())
	for l, i := range owned {
		rows[l] = tree.knn(i, k)
		for _, j := range rows[l] {
			to := d.Owner(j)
			send[to] = append(send[to], matrix.Entry{Row: j, Col: i})
		}
	}
	recv, err := dist.AllToAll(c, send)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodClustered, err)
	}
	for _, msg := range recv {
		for _, e := range msg {
			l := d.LocalIndex(e.Row)
			rows[l] = append(rows[l], e.Col)
		}
	}

	b := matrix.NewBuilder(d, rank, n)
	for l, i := range owned {
		slices.Sort(rows[l])
		for _, j := range slices.Compact(rows[l]) {
			if err := b.Add(i, j, cfg.edgeWeight(i, j)); err != nil {
				return nil, fmt.Errorf("%s: %w", MethodClustered, err)
			}
		}
	}

	m := &Mesh{Dims: dims, Adjacency: b.Build()}
	for axis := 0; axis < dims; axis++ {
		m.MaxCoord = append(m.MaxCoord, maxCoord)
		m.Coords = append(m.Coords, matrix.NewVectorFunc(d, rank, func(i int) float64 {
			return [MaxDims]float64{pts[i].X, pts[i].Y, pts[i].Z}[axis]
		}))
	}
	cfg.log.Debug().Str("method", MethodClustered).Int("rank", rank).Int64("seed", seed).
		Int("k", k).Int("treeNodes", len(tree.nodes)).Msg("local rows assembled")
	return finish(c, MethodClustered, cfg, m)
}
