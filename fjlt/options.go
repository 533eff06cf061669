// SPDX-License-Identifier: MIT
// Package: geomesh/fjlt
//
// options.go — functional options and deterministic defaults.
//
// Defaults:
//   • seed = 0 (New draws one; NewShared lets rank 0 draw and broadcast it)
//   • log  = zerolog.Nop()

package fjlt

import "github.com/rs/zerolog"

// Option customizes a transform.
type Option func(*config)

type config struct {
	seed int64
	log  zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSeed fixes the seed. Zero means "draw one".
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}
