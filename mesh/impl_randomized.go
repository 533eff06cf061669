// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// impl_randomized.go — regular grid with perturbed coordinates.
//
// Contract:
//   • Topology, degrees and weights are exactly those of Structured.
//   • Coordinate k of node i moves by u·jitter·step[k], u ~ U[-1, 1), and is
//     clamped to [0, maxCoord[k]].
//   • Noise comes from a PCG stream keyed by (agreed seed, i): a node's
//     coordinates are identical whichever worker owns it.

package mesh

import (
	"math/rand/v2"

	"github.com/katalvlaran/geomesh/dist"
)

// Randomized generates the grid of Structured and perturbs every coordinate
// by bounded noise. The seed (WithSeed, or drawn by rank 0) is agreed across
// workers before use. It must be called by every worker of c.
func Randomized(c *dist.Comm, d dist.Distribution, numPoints []int, maxCoord []float64, opts ...Option) (*Mesh, error) {
	cfg := newMeshConfig(opts...)
	m, err := structured(c, d, MethodRandomized, numPoints, maxCoord, cfg)
	if err != nil {
		return nil, err
	}
	seed, err := dist.AgreeSeed(c, cfg.seed, 0)
	if err != nil {
		return nil, err
	}

	lt := newLattice(numPoints, maxCoord)
	for l, i := range dist.Owned(d, c.Rank()) {
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(i)))
		for k, x := range m.Coords {
			v := x.Local()[l] + (2*rng.Float64()-1)*cfg.jitter*lt.step[k]
			x.Local()[l] = min(max(v, 0), maxCoord[k])
		}
	}
	return finish(c, MethodRandomized, cfg, m)
}
