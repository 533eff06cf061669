// SPDX-License-Identifier: MIT
// Package: geomesh/dist
//
// seed.go — agree-then-use protocol for shared randomness.

package dist

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

const methodAgreeSeed = "AgreeSeed"

// AgreeSeed makes every worker observe the same seed. The root keeps a
// non-zero seed as is and draws a fresh one when seed == 0; the value is then
// broadcast. Seeds passed by non-root workers are ignored, so a caller that
// derives its seed locally cannot make workers diverge.
func AgreeSeed(c *Comm, seed int64, root int) (int64, error) {
	if c.Rank() == root && seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("%s: draw seed: %w", methodAgreeSeed, err)
		}
		seed = int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
		if seed == 0 {
			seed = 1
		}
	}
	agreed, err := Broadcast(c, seed, root)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", methodAgreeSeed, err)
	}
	c.log.Debug().Int64("seed", agreed).Int("root", root).Msg("seed agreed")
	return agreed, nil
}
