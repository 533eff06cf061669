package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

func TestBuilder_SortsAndMerges(t *testing.T) {
	t.Parallel()

	d, err := dist.NewBlock(4, 2)
	require.NoError(t, err)

	b := matrix.NewBuilder(d, 1, 4)
	require.NoError(t, b.Add(3, 2, 1))
	require.NoError(t, b.Add(2, 3, 5))
	require.NoError(t, b.Add(2, 0, 1))
	require.NoError(t, b.Add(2, 3, 0.5))
	m := b.Build()

	require.Equal(t, 2, m.LocalRows())
	require.Equal(t, 3, m.LocalNNZ())
	cols, vals := m.Row(0)
	require.Equal(t, []int{0, 3}, cols)
	require.Equal(t, []float64{1, 5.5}, vals)
	require.Equal(t, 2, m.GlobalRow(0))

	v, ok := m.Value(1, 2)
	require.True(t, ok)
	require.Equal(t, 1.0, v)
	_, ok = m.Value(1, 0)
	require.False(t, ok)

	require.Equal(t, []float64{6.5, 1}, m.RowSums().Local())
	require.Equal(t, []float64{0, 0}, m.Diagonal().Local())
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	d, err := dist.NewCyclic(4, 2)
	require.NoError(t, err)
	b := matrix.NewBuilder(d, 0, 4)

	require.ErrorIs(t, b.Add(1, 0, 1), matrix.ErrNotOwned)
	require.ErrorIs(t, b.Add(0, 4, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, b.Add(-1, 0, 1), matrix.ErrOutOfRange)
}

func TestMatVec_MatchesSerial(t *testing.T) {
	t.Parallel()

	const n = 11
	// Serial reference y = A x for x_i = i*i.
	want := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, j := range []int{(i + 1) % n, (i + n - 1) % n} {
			want[i] += (1 + float64(min(i, j))) * float64(j*j)
		}
	}

	forEachLayout(t, n, func(t *testing.T, d dist.Distribution) {
		run(t, d, func(c *dist.Comm) error {
			a, err := ringAdjacency(d, c.Rank())
			if err != nil {
				return err
			}
			x := matrix.NewVectorFunc(d, c.Rank(), func(i int) float64 { return float64(i * i) })
			// Twice: the second product reuses the halo plan.
			for range 2 {
				y, err := a.MatVec(c, x)
				if err != nil {
					return err
				}
				got, err := y.Gather(c)
				if err != nil {
					return err
				}
				assert.Equal(t, want, got)
			}
			return nil
		})
	})
}

func TestRedistribute_PreservesEntries(t *testing.T) {
	t.Parallel()

	const n = 9
	forEachLayout(t, n, func(t *testing.T, d dist.Distribution) {
		run(t, d, func(c *dist.Comm) error {
			a, err := ringAdjacency(d, c.Rank())
			if err != nil {
				return err
			}
			before, err := matrix.GatherEntries(c, a)
			if err != nil {
				return err
			}
			nd, err := dist.NewCyclic(n, c.Size())
			if err != nil {
				return err
			}
			moved, err := a.Redistribute(c, nd)
			if err != nil {
				return err
			}
			assert.Equal(t, nd.LocalSize(c.Rank()), moved.LocalRows())
			after, err := matrix.GatherEntries(c, moved)
			if err != nil {
				return err
			}
			assert.Equal(t, before, after)
			assert.Len(t, after, 2*n)
			return matrix.CheckAdjacency(c, moved)
		})
	})
}

func TestCheckAdjacency(t *testing.T) {
	t.Parallel()

	const n = 6
	tests := []struct {
		name string
		edit func(b *matrix.Builder, rank int, d dist.Distribution) error
		want error
	}{
		{"valid", func(*matrix.Builder, int, dist.Distribution) error { return nil }, nil},
		{"self-loop", func(b *matrix.Builder, rank int, d dist.Distribution) error {
			if d.Owner(2) == rank {
				return b.Add(2, 2, 1)
			}
			return nil
		}, matrix.ErrSelfLoop},
		{"one-way edge", func(b *matrix.Builder, rank int, d dist.Distribution) error {
			if d.Owner(0) == rank {
				return b.Add(0, 3, 1)
			}
			return nil
		}, matrix.ErrAsymmetry},
		{"negative weight", func(b *matrix.Builder, rank int, d dist.Distribution) error {
			for _, e := range [][2]int{{1, 4}, {4, 1}} {
				if d.Owner(e[0]) == rank {
					if err := b.Add(e[0], e[1], -2); err != nil {
						return err
					}
				}
			}
			return nil
		}, matrix.ErrInvalidWeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := dist.NewBlock(n, 3)
			require.NoError(t, err)
			errs := make([]error, 3)
			run(t, d, func(c *dist.Comm) error {
				b := matrix.NewBuilder(d, c.Rank(), n)
				for _, i := range dist.Owned(d, c.Rank()) {
					for _, j := range []int{(i + 1) % n, (i + n - 1) % n} {
						if err := b.Add(i, j, 1); err != nil {
							return err
						}
					}
				}
				if err := tc.edit(b, c.Rank(), d); err != nil {
					return err
				}
				errs[c.Rank()] = matrix.CheckAdjacency(c, b.Build())
				return nil
			})
			for rank, err := range errs {
				if tc.want == nil {
					assert.NoError(t, err, "rank %d", rank)
					continue
				}
				// Every worker agrees on the verdict.
				assert.ErrorIs(t, err, matrix.ErrInconsistent, "rank %d", rank)
			}
			if tc.want != nil {
				found := false
				for _, err := range errs {
					found = found || errors.Is(err, tc.want)
				}
				assert.True(t, found, "some worker must report %v", tc.want)
			}
		})
	}
}

func TestGatherGraph(t *testing.T) {
	t.Parallel()

	const n = 7
	d, err := dist.NewCyclic(n, 3)
	require.NoError(t, err)
	run(t, d, func(c *dist.Comm) error {
		a, err := ringAdjacency(d, c.Rank())
		if err != nil {
			return err
		}
		g, err := matrix.GatherGraph(c, a)
		if err != nil {
			return err
		}
		assert.Equal(t, n, g.Nodes().Len())
		assert.Equal(t, n, g.Edges().Len())
		w, ok := g.Weight(2, 3)
		assert.True(t, ok)
		assert.Equal(t, 3.0, w)
		nnz, err := a.GlobalNNZ(c)
		assert.Equal(t, 2*n, nnz)
		return err
	})
}
