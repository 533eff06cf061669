// SPDX-License-Identifier: MIT
// Package: geomesh/dist
//
// errors.go — sentinel errors for the dist package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached with fmt.Errorf("%s: ...: %w", method, ErrX).

package dist

import "errors"

// ErrBadDistribution indicates an invalid distribution configuration:
// non-positive size or worker count, or an owner outside [0, workers).
var ErrBadDistribution = errors.New("dist: invalid distribution")

// ErrBadWorkers indicates that Run was asked for a non-positive worker count.
var ErrBadWorkers = errors.New("dist: worker count must be > 0")

// ErrBadRoot indicates a root rank outside [0, Size()).
var ErrBadRoot = errors.New("dist: root rank out of range")

// ErrBadMessage indicates a collective call with a payload of the wrong shape,
// e.g. an AllToAll send slice whose length differs from the group size or
// AllReduceSums vectors of different lengths across workers.
var ErrBadMessage = errors.New("dist: malformed collective payload")

// ErrAborted is returned by any collective once the group was aborted, either
// because a worker failed or because the Run context was cancelled.
var ErrAborted = errors.New("dist: worker group aborted")
