// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// landmarks.go — agreed random choice of landmark sources.

package diffusion

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/geomesh/dist"
)

const methodSampleLandmarks = "SampleLandmarks"

// SampleLandmarks returns k distinct node indices in [0, n), sorted, and
// identical on every worker. The seed is agreed first (zero lets rank 0 draw
// one); selection is a partial Fisher–Yates shuffle over a PCG stream, using
// O(k) memory. Collective.
func SampleLandmarks(c *dist.Comm, n, k int, seed int64) ([]int, error) {
	if n < 1 || k < 1 || k > n {
		return nil, fmt.Errorf("%s: k=%d, n=%d: %w", methodSampleLandmarks, k, n, ErrBadLandmarkCount)
	}
	seed, err := dist.AgreeSeed(c, seed, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSampleLandmarks, err)
	}

	rng := rand.New(rand.NewPCG(uint64(seed), 0x6c616e646d61726b))
	// swapped holds the positions of the virtual permutation that moved.
	swapped := make(map[int]int, 2*k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	slices.Sort(out)
	return out, nil
}
