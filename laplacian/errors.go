// SPDX-License-Identifier: MIT
// Package: geomesh/laplacian
//
// errors.go — sentinel errors for the laplacian package.

package laplacian

import "errors"

// ErrNilAdjacency is returned when Build receives no matrix.
var ErrNilAdjacency = errors.New("laplacian: nil adjacency")

// ErrRowSum indicates a row whose entries do not sum to zero within tolerance.
var ErrRowSum = errors.New("laplacian: row sum is not zero")
