package matrix_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

// layout names a distribution family for table tests.
type layout struct {
	name string
	mk   func(n, p int) (dist.Distribution, error)
}

var layouts = []layout{
	{"block", dist.NewBlock},
	{"cyclic", dist.NewCyclic},
	{"reversed", func(n, p int) (dist.Distribution, error) {
		owners := make([]int, n)
		for i := range owners {
			owners[i] = (p - 1) - (i*p)/n
		}
		return dist.NewGeneral(owners, p)
	}},
}

// forEachLayout runs fn under every layout and several worker counts.
func forEachLayout(t *testing.T, n int, fn func(t *testing.T, d dist.Distribution)) {
	t.Helper()
	for _, l := range layouts {
		for _, p := range []int{1, 2, 3, 4} {
			d, err := l.mk(n, p)
			require.NoError(t, err)
			t.Run(fmt.Sprintf("%s/p=%d", l.name, p), func(t *testing.T) { fn(t, d) })
		}
	}
}

// run executes fn on every rank of d.
func run(t *testing.T, d dist.Distribution, fn func(c *dist.Comm) error) {
	t.Helper()
	require.NoError(t, dist.Run(context.Background(), d.Workers(), func(_ context.Context, c *dist.Comm) error {
		return fn(c)
	}))
}

// ringAdjacency builds the cycle 0-1-…-(n-1)-0 with weight 1+min(i,j).
func ringAdjacency(d dist.Distribution, rank int) (*matrix.CSR, error) {
	n := d.GlobalSize()
	b := matrix.NewBuilder(d, rank, n)
	for _, i := range dist.Owned(d, rank) {
		for _, j := range []int{(i + 1) % n, (i + n - 1) % n} {
			if err := b.Add(i, j, 1+float64(min(i, j))); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}
