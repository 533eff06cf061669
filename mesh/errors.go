// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// errors.go — sentinel errors for the mesh package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers use errors.Is.
//   • Generators attach context as "<Method>: <detail>: %w".
//   • Structural post-condition failures wrap matrix.ErrInconsistent instead
//     of a mesh sentinel, so one errors.Is check covers every generator.
//
// Priority when several validations fail:
//   ErrBadDimensions → ErrTooFewPoints → ErrBadExtent → ErrSizeMismatch.

package mesh

import "errors"

// ErrBadDimensions indicates a dimension count outside {2,3} or parameter
// slices whose lengths disagree with it.
var ErrBadDimensions = errors.New("mesh: unsupported dimensions")

// ErrTooFewPoints indicates a non-positive grid resolution, area count or
// points-per-area count.
var ErrTooFewPoints = errors.New("mesh: point count must be positive")

// ErrBadExtent indicates a non-positive or non-finite maxCoord.
var ErrBadExtent = errors.New("mesh: extent must be positive and finite")

// ErrSizeMismatch indicates that the distribution does not cover exactly the
// node count implied by the parameters, or spans a different worker count
// than the communicator.
var ErrSizeMismatch = errors.New("mesh: distribution size mismatch")

// ErrCoordinateRange indicates a coordinate outside [0, maxCoord[k]].
var ErrCoordinateRange = errors.New("mesh: coordinate out of range")
