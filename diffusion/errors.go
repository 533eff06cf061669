// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// errors.go — sentinel errors and the non-convergence report.
//
// Error policy:
//   • Sentinels only; callers use errors.Is / errors.As.
//   • Context is attached as "<Method>: <detail>: %w".
//   • Non-convergence is a *NotConvergedError that matches ErrNotConverged.

package diffusion

import (
	"errors"
	"fmt"
)

var (
	// ErrBadTolerance indicates eps ≤ 0, NaN or +Inf.
	ErrBadTolerance = errors.New("diffusion: tolerance must be positive and finite")

	// ErrBadLaplacian indicates a nil or non-square operator, or one spread
	// over a different number of workers than the group.
	ErrBadLaplacian = errors.New("diffusion: invalid Laplacian")

	// ErrBadSource indicates a source index outside [0, n) or an empty source set.
	ErrBadSource = errors.New("diffusion: source out of range")

	// ErrDuplicateSource indicates a source listed twice in a multi-source solve.
	ErrDuplicateSource = errors.New("diffusion: duplicate source")

	// ErrBadWeights indicates a weight vector with another layout than the
	// Laplacian, or a non-positive or non-finite weight.
	ErrBadWeights = errors.New("diffusion: invalid node weights")

	// ErrBadLandmarkCount indicates k outside [1, n] for landmark sampling.
	ErrBadLandmarkCount = errors.New("diffusion: landmark count out of range")

	// ErrDisconnected indicates a graph with more than one connected
	// component, reported only under WithConnectivityCheck.
	ErrDisconnected = errors.New("diffusion: graph is not connected")

	// ErrNotConverged indicates that CG reached the iteration bound.
	ErrNotConverged = errors.New("diffusion: solver did not converge")
)

// NotConvergedError reports a solve that hit its iteration bound.
type NotConvergedError struct {
	Source     int
	Iterations int
	Residual   float64 // relative, ‖r‖/‖b‖
	Tolerance  float64
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("%v: source %d, %d iterations, residual %.3g > %.3g",
		ErrNotConverged, e.Source, e.Iterations, e.Residual, e.Tolerance)
}

// Unwrap makes errors.Is(err, ErrNotConverged) hold.
func (e *NotConvergedError) Unwrap() error { return ErrNotConverged }
