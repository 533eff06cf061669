// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// weights.go — node weights and the shared validation of solver inputs.

package diffusion

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

// UniformWeights returns the all-ones weight vector for worker rank of d.
func UniformWeights(d dist.Distribution, rank int) *matrix.Vector {
	w := matrix.NewVector(d, rank)
	w.Fill(1)
	return w
}

// validateOperator runs the pure checks shared by every solve.
func validateOperator(method string, c *dist.Comm, lap *matrix.CSR, eps float64) error {
	if !(eps > 0) || math.IsInf(eps, 0) {
		return fmt.Errorf("%s: eps=%v: %w", method, eps, ErrBadTolerance)
	}
	if lap == nil {
		return fmt.Errorf("%s: nil: %w", method, ErrBadLaplacian)
	}
	if lap.Rows() != lap.Cols() {
		return fmt.Errorf("%s: %dx%d: %w", method, lap.Rows(), lap.Cols(), ErrBadLaplacian)
	}
	if lap.Distribution().Workers() != c.Size() {
		return fmt.Errorf("%s: Laplacian over %d workers, group of %d: %w",
			method, lap.Distribution().Workers(), c.Size(), ErrBadLaplacian)
	}
	return nil
}

// validateWeights checks layout locally and values collectively, so every
// worker returns the same verdict.
func validateWeights(method string, c *dist.Comm, lap *matrix.CSR, w *matrix.Vector) error {
	if w == nil || !dist.Same(w.Distribution(), lap.Distribution()) || w.Rank() != lap.Rank() {
		return fmt.Errorf("%s: layout differs from the Laplacian: %w", method, ErrBadWeights)
	}
	var local error
	for l, v := range w.Local() {
		if !(v > 0) || math.IsInf(v, 0) {
			local = fmt.Errorf("%s: w[%d]=%v: %w", method, w.Distribution().GlobalIndex(w.Rank(), l), v, ErrBadWeights)
			break
		}
	}
	flag := 0
	if local != nil {
		flag = 1
	}
	global, err := c.AllReduceMaxInt(flag)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if local != nil {
		return local
	}
	if global > 0 {
		return fmt.Errorf("%s: reported by another worker: %w", method, ErrBadWeights)
	}
	return nil
}

// validateConnected fails with ErrDisconnected when lap has several components.
func validateConnected(method string, c *dist.Comm, lap *matrix.CSR) error {
	_, count, err := matrix.ConnectedComponents(c, lap)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if count > 1 {
		return fmt.Errorf("%s: %d components: %w", method, count, ErrDisconnected)
	}
	return nil
}
