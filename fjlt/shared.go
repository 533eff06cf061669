// SPDX-License-Identifier: MIT
// Package: geomesh/fjlt
//
// shared.go — one transform for a whole worker group.

package fjlt

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/geomesh/dist"
)

const methodNewShared = "NewShared"

// NewShared builds the same transform on every worker of c: the seed from
// WithSeed (or one drawn by rank 0) is agreed before use. Parameters are
// validated before the broadcast so that invalid input fails on every worker
// without communication. Collective.
func NewShared(c *dist.Comm, epsilon float64, n, origDimension int, opts ...Option) (*Transform, error) {
	cfg := newConfig(opts...)
	if _, err := validate(methodNewShared, epsilon, n, origDimension); err != nil {
		return nil, err
	}

	seed, err := dist.AgreeSeed(c, cfg.seed, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewShared, err)
	}
	t, err := New(epsilon, n, origDimension, append(slices.Clone(opts), WithSeed(seed))...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewShared, err)
	}
	return t, nil
}
