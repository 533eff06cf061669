// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// cg.go — conjugate gradients on the complement of the all-ones vector.
//
// Invariants:
//   • b, r and p are mean-free after every projection; since L·1 = 0,
//     projecting p after L·p leaves L·p unchanged and only corrects p·Lp by
//     mean(p)·Σ(Lp), which vanishes up to rounding.
//   • Every branch depends on reduced values only, so all workers take the
//     same number of iterations and never desynchronize their collectives.
//
// Collectives per iteration: one halo exchange, two AllReduceSums.

package diffusion

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

// cgResult is the outcome of one projected CG run.
type cgResult struct {
	x          *matrix.Vector
	iterations int
	residual   float64 // ‖r‖/‖b‖
	converged  bool
}

// project subtracts mean from v given the already reduced sum.
func project(v *matrix.Vector, sum float64) {
	v.AddConst(-sum / float64(v.Len()))
}

// projectedCG solves lap·x = b for b ⟂ 1 and returns the zero-mean solution.
// b is projected in place.
func projectedCG(c *dist.Comm, lap *matrix.CSR, b *matrix.Vector, eps float64, maxIter int) (cgResult, error) {
	n := float64(b.Len())

	red, err := c.AllReduceSums([]float64{floats.Sum(b.Local()), floats.Dot(b.Local(), b.Local())})
	if err != nil {
		return cgResult{}, err
	}
	project(b, red[0])
	bb := math.Max(red[1]-red[0]*red[0]/n, 0)
	bnorm := math.Sqrt(bb)

	x := matrix.NewVector(b.Distribution(), b.Rank())
	if bnorm == 0 {
		return cgResult{x: x, converged: true}, nil
	}
	r, p := b.Clone(), b.Clone()
	ap := matrix.NewVector(b.Distribution(), b.Rank())
	rr := bb

	res := cgResult{x: x}
	for {
		res.residual = math.Sqrt(rr) / bnorm
		if res.residual <= eps {
			res.converged = true
			break
		}
		if res.iterations >= maxIter {
			break
		}

		if err := lap.MatVecTo(c, ap, p); err != nil {
			return cgResult{}, err
		}
		red, err := c.AllReduceSums([]float64{floats.Dot(p.Local(), ap.Local()), floats.Sum(p.Local())})
		if err != nil {
			return cgResult{}, err
		}
		project(p, red[1])
		pap := red[0]
		if !(pap > 0) {
			// p lies in the null space: b has a component on another
			// connected component, no further progress is possible.
			break
		}
		alpha := rr / pap
		floats.AddScaled(x.Local(), alpha, p.Local())
		floats.AddScaled(r.Local(), -alpha, ap.Local())

		red, err = c.AllReduceSums([]float64{floats.Sum(r.Local()), floats.Dot(r.Local(), r.Local())})
		if err != nil {
			return cgResult{}, err
		}
		project(r, red[0])
		rrNew := math.Max(red[1]-red[0]*red[0]/n, 0)

		beta := rrNew / rr
		floats.AddScaledTo(p.Local(), r.Local(), beta, p.Local())
		rr = rrNew
		res.iterations++
	}

	sum, err := x.Sum(c)
	if err != nil {
		return cgResult{}, err
	}
	project(x, sum)
	return res, nil
}
