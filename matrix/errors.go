// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All operations return these sentinels (optionally wrapped with an operation
// tag via %w); callers and tests match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates incompatible shapes, e.g. a vector whose
	// global size differs from the matrix column count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals an entry (i,j) without a matching (j,i) of equal value.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric")

	// ErrSelfLoop signals a diagonal entry in an adjacency matrix.
	ErrSelfLoop = errors.New("matrix: self-loop in adjacency")

	// ErrInvalidWeight signals a NaN, ±Inf or non-positive edge weight.
	ErrInvalidWeight = errors.New("matrix: invalid edge weight")

	// ErrNotOwned signals an entry added for a row the worker does not own.
	ErrNotOwned = errors.New("matrix: row not owned by this worker")

	// ErrDistributionMismatch signals operands that live on different
	// distributions (or on a distribution whose worker count differs from the
	// communicator size).
	ErrDistributionMismatch = errors.New("matrix: distribution mismatch")

	// ErrInconsistent is the umbrella for failed structural post-conditions.
	// Every error returned by CheckAdjacency/CheckSymmetric matches it.
	ErrInconsistent = errors.New("matrix: structural inconsistency")
)

// Operation tags for uniform error wrapping.
const (
	opBuild          = "Build"
	opMatVec         = "MatVec"
	opDot            = "Dot"
	opRedistribute   = "Redistribute"
	opCheckAdjacency = "CheckAdjacency"
	opCheckSymmetric = "CheckSymmetric"
	opGather         = "Gather"
	opAddScaled      = "AddScaled"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Only call with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
