// SPDX-License-Identifier: MIT
// Package: geomesh/fjlt
//
// errors.go — sentinel errors for the fjlt package.

package fjlt

import "errors"

var (
	// ErrBadEpsilon indicates ε outside (0, 1).
	ErrBadEpsilon = errors.New("fjlt: epsilon must be in (0,1)")

	// ErrBadDimension indicates n < 2, origDimension < 1, a Hadamard order
	// that is not a power of two, or an input vector of the wrong length.
	ErrBadDimension = errors.New("fjlt: invalid dimension")

	// ErrNoReduction indicates a target dimension that is not smaller than
	// origDimension.
	ErrNoReduction = errors.New("fjlt: target dimension does not reduce origDimension")
)
