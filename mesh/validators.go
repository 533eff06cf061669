// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// validators.go — parameter checks shared by the generators. All checks are
// pure and run before any collective, so every worker reaches the same verdict.

package mesh

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geomesh/dist"
)

func validateDims(method string, dims int) error {
	if dims < MinDims || dims > MaxDims {
		return fmt.Errorf("%s: dims=%d not in [%d,%d]: %w", method, dims, MinDims, MaxDims, ErrBadDimensions)
	}
	return nil
}

func validateGrid(method string, numPoints []int, maxCoord []float64) error {
	if err := validateDims(method, len(numPoints)); err != nil {
		return err
	}
	if len(maxCoord) != len(numPoints) {
		return fmt.Errorf("%s: len(maxCoord)=%d, len(numPoints)=%d: %w",
			method, len(maxCoord), len(numPoints), ErrBadDimensions)
	}
	for k, np := range numPoints {
		if np < 1 {
			return fmt.Errorf("%s: numPoints[%d]=%d: %w", method, k, np, ErrTooFewPoints)
		}
	}
	for k, mc := range maxCoord {
		if err := validateExtent(method, k, mc); err != nil {
			return err
		}
	}
	return nil
}

func validateExtent(method string, k int, mc float64) error {
	if !(mc > 0) || math.IsInf(mc, 0) {
		return fmt.Errorf("%s: maxCoord[%d]=%v: %w", method, k, mc, ErrBadExtent)
	}
	return nil
}

func validateLayout(method string, c *dist.Comm, d dist.Distribution, n int) error {
	if d == nil || d.GlobalSize() != n {
		size := 0
		if d != nil {
			size = d.GlobalSize()
		}
		return fmt.Errorf("%s: distribution covers %d nodes, mesh has %d: %w", method, size, n, ErrSizeMismatch)
	}
	if d.Workers() != c.Size() {
		return fmt.Errorf("%s: distribution over %d workers, group of %d: %w", method, d.Workers(), c.Size(), ErrSizeMismatch)
	}
	return nil
}
