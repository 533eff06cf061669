package mesh_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
	"github.com/katalvlaran/geomesh/mesh"
)

// generator builds a mesh on d; tables use it to cover all three methods.
type generator func(c *dist.Comm, d dist.Distribution) (*mesh.Mesh, error)

// snapshot is the distribution-free view of a mesh, taken on rank 0.
type snapshot struct {
	entries []matrix.Entry
	coords  [][]float64
}

// run executes fn on every rank of d.
func run(t *testing.T, d dist.Distribution, fn func(c *dist.Comm) error) {
	t.Helper()
	require.NoError(t, dist.Run(context.Background(), d.Workers(), func(_ context.Context, c *dist.Comm) error {
		return fn(c)
	}))
}

// generate runs gen on d and returns the gathered global mesh.
func generate(t *testing.T, d dist.Distribution, gen generator) snapshot {
	t.Helper()
	var snap snapshot
	run(t, d, func(c *dist.Comm) error {
		m, err := gen(c, d)
		if err != nil {
			return err
		}
		entries, err := matrix.GatherEntries(c, m.Adjacency)
		if err != nil {
			return err
		}
		coords, err := m.GatherCoordinates(c)
		if err != nil {
			return err
		}
		if c.Rank() == 0 {
			snap = snapshot{entries: entries, coords: coords}
		}
		return nil
	})
	return snap
}

func reversed(n, p int) (dist.Distribution, error) {
	owners := make([]int, n)
	for i := range owners {
		owners[i] = (p - 1) - (i*p)/n
	}
	return dist.NewGeneral(owners, p)
}

func mustDist(t *testing.T, mk func(n, p int) (dist.Distribution, error), n, p int) dist.Distribution {
	t.Helper()
	d, err := mk(n, p)
	require.NoError(t, err)
	return d
}
