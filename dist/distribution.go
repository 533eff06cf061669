// SPDX-License-Identifier: MIT
// Package: geomesh/dist
//
// distribution.go — Distribution interface and its block, cyclic and general
// implementations.
//
// Contract:
//   • A Distribution is a pure mapping; it never owns row data.
//   • Owner/LocalIndex/GlobalIndex are O(1) for block and cyclic, O(1) after an
//     O(n) precomputation for general distributions.
//   • Local indices on every worker enumerate owned globals in ascending order.
//   • Implementations are immutable and safe for concurrent use.

package dist

import "fmt"

const (
	methodNewBlock   = "NewBlock"
	methodNewCyclic  = "NewCyclic"
	methodNewGeneral = "NewGeneral"
)

// Distribution maps global indices of a co-distributed structure to workers.
type Distribution interface {
	// GlobalSize is the total number of indices n.
	GlobalSize() int
	// Workers is the number of workers p the indices are spread over.
	Workers() int
	// Owner returns the rank owning global index i.
	Owner(i int) int
	// LocalIndex returns the offset of global index i on its owner.
	LocalIndex(i int) int
	// GlobalIndex is the inverse of LocalIndex for the given rank.
	GlobalIndex(rank, local int) int
	// LocalSize is the number of indices owned by rank.
	LocalSize(rank int) int
	fmt.Stringer
}

func validateSize(method string, n, p int) error {
	if n < 1 || p < 1 {
		return fmt.Errorf("%s: n=%d, workers=%d (each must be ≥ 1): %w", method, n, p, ErrBadDistribution)
	}
	return nil
}

// ---------- block ----------

type block struct {
	n, p      int
	base, rem int // every block has base rows, the first rem blocks one more
}

// NewBlock returns a contiguous block distribution of n indices over p workers.
// The first n mod p workers own one index more than the rest.
func NewBlock(n, p int) (Distribution, error) {
	if err := validateSize(methodNewBlock, n, p); err != nil {
		return nil, err
	}
	return &block{n: n, p: p, base: n / p, rem: n % p}, nil
}

func (b *block) GlobalSize() int { return b.n }
func (b *block) Workers() int    { return b.p }

func (b *block) start(rank int) int { return rank*b.base + min(rank, b.rem) }

func (b *block) Owner(i int) int {
	// Indices below split live in the (base+1)-sized blocks.
	split := b.rem * (b.base + 1)
	if i < split {
		return i / (b.base + 1)
	}
	return b.rem + (i-split)/b.base
}

func (b *block) LocalIndex(i int) int { return i - b.start(b.Owner(i)) }

func (b *block) GlobalIndex(rank, local int) int { return b.start(rank) + local }

func (b *block) LocalSize(rank int) int {
	if rank < b.rem {
		return b.base + 1
	}
	return b.base
}

func (b *block) String() string { return fmt.Sprintf("block(n=%d,p=%d)", b.n, b.p) }

// ---------- cyclic ----------

type cyclic struct{ n, p int }

// NewCyclic returns a round-robin distribution: index i lives on worker i mod p.
func NewCyclic(n, p int) (Distribution, error) {
	if err := validateSize(methodNewCyclic, n, p); err != nil {
		return nil, err
	}
	return &cyclic{n: n, p: p}, nil
}

func (c *cyclic) GlobalSize() int                 { return c.n }
func (c *cyclic) Workers() int                    { return c.p }
func (c *cyclic) Owner(i int) int                 { return i % c.p }
func (c *cyclic) LocalIndex(i int) int            { return i / c.p }
func (c *cyclic) GlobalIndex(rank, local int) int { return local*c.p + rank }

func (c *cyclic) LocalSize(rank int) int {
	size := c.n / c.p
	if rank < c.n%c.p {
		size++
	}
	return size
}

func (c *cyclic) String() string { return fmt.Sprintf("cyclic(n=%d,p=%d)", c.n, c.p) }

// ---------- general ----------

type general struct {
	p      int
	owners []int   // owner per global index
	local  []int   // local offset per global index
	owned  [][]int // ascending globals per rank
}

// NewGeneral derives a distribution from a partition vector: owners[i] is the
// worker owning global index i. The slice is copied.
func NewGeneral(owners []int, p int) (Distribution, error) {
	if err := validateSize(methodNewGeneral, len(owners), p); err != nil {
		return nil, err
	}
	g := &general{
		p:      p,
		owners: make([]int, len(owners)),
		local:  make([]int, len(owners)),
		owned:  make([][]int, p),
	}
	for i, r := range owners {
		if r < 0 || r >= p {
			return nil, fmt.Errorf("%s: owner[%d]=%d not in [0,%d): %w", methodNewGeneral, i, r, p, ErrBadDistribution)
		}
		g.owners[i] = r
		g.local[i] = len(g.owned[r])
		g.owned[r] = append(g.owned[r], i)
	}
	return g, nil
}

func (g *general) GlobalSize() int                 { return len(g.owners) }
func (g *general) Workers() int                    { return g.p }
func (g *general) Owner(i int) int                 { return g.owners[i] }
func (g *general) LocalIndex(i int) int            { return g.local[i] }
func (g *general) GlobalIndex(rank, local int) int { return g.owned[rank][local] }
func (g *general) LocalSize(rank int) int          { return len(g.owned[rank]) }

func (g *general) String() string { return fmt.Sprintf("general(n=%d,p=%d)", len(g.owners), g.p) }

// ---------- helpers ----------

// Same reports whether a and b map every global index to the same owner and
// local offset. Identical values short-circuit.
// Complexity: O(n) in the worst case.
func Same(a, b Distribution) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.GlobalSize() != b.GlobalSize() || a.Workers() != b.Workers() {
		return false
	}
	for i := 0; i < a.GlobalSize(); i++ {
		if a.Owner(i) != b.Owner(i) || a.LocalIndex(i) != b.LocalIndex(i) {
			return false
		}
	}
	return true
}

// Owned returns the ascending global indices owned by rank.
func Owned(d Distribution, rank int) []int {
	out := make([]int, d.LocalSize(rank))
	for l := range out {
		out[l] = d.GlobalIndex(rank, l)
	}
	return out
}
