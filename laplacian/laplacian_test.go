package laplacian_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/laplacian"
	"github.com/katalvlaran/geomesh/matrix"
	"github.com/katalvlaran/geomesh/mesh"
)

func run(t *testing.T, p int, fn func(c *dist.Comm) error) {
	t.Helper()
	require.NoError(t, dist.Run(context.Background(), p, func(_ context.Context, c *dist.Comm) error {
		return fn(c)
	}))
}

// dense returns the global matrix as a gonum dense matrix.
func dense(c *dist.Comm, m *matrix.CSR) (*mat.Dense, error) {
	entries, err := matrix.GatherEntries(c, m)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(m.Rows(), m.Cols(), nil)
	for _, e := range entries {
		out.Set(e.Row, e.Col, e.Value)
	}
	return out, nil
}

func TestBuild_GridProperties(t *testing.T) {
	t.Parallel()

	for _, p := range []int{1, 2, 4} {
		for _, mk := range []func(n, p int) (dist.Distribution, error){dist.NewBlock, dist.NewCyclic} {
			d, err := mk(6*5, p)
			require.NoError(t, err)
			t.Run(d.String(), func(t *testing.T) {
				t.Parallel()
				run(t, p, func(c *dist.Comm) error {
					m, err := mesh.Structured(c, d, []int{6, 5}, []float64{1, 1},
						mesh.WithWeightFn(mesh.UniformWeightFn(0.5, 2, 3)))
					if err != nil {
						return err
					}
					before, err := matrix.GatherEntries(c, m.Adjacency)
					if err != nil {
						return err
					}

					lap, err := laplacian.Build(m.Adjacency)
					if err != nil {
						return err
					}
					assert.True(t, dist.Same(d, lap.Distribution()))
					assert.Equal(t, m.Adjacency.LocalNNZ()+m.Adjacency.LocalRows(), lap.LocalNNZ())
					assert.NoError(t, laplacian.CheckRowSums(c, lap, 1e-12))
					assert.NoError(t, matrix.CheckSymmetric(c, lap, 0))
					assert.InDeltaSlice(t, laplacian.Degrees(m.Adjacency).Local(), lap.Diagonal().Local(), 1e-12)

					for l := 0; l < lap.LocalRows(); l++ {
						i := lap.GlobalRow(l)
						cols, vals := lap.Row(l)
						for k, j := range cols {
							if j == i {
								continue
							}
							a, ok := m.Adjacency.Value(l, j)
							assert.True(t, ok)
							assert.Equal(t, -a, vals[k])
						}
					}

					after, err := matrix.GatherEntries(c, m.Adjacency)
					if err != nil {
						return err
					}
					assert.Equal(t, before, after, "input modified")
					return nil
				})
			})
		}
	}
}

// twoTriangles is 0-1-2 and 3-4-5 plus the isolated node 6.
func twoTriangles(d dist.Distribution, rank int) (*matrix.CSR, error) {
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}, {3, 4}, {4, 5}, {3, 5}}
	b := matrix.NewBuilder(d, rank, d.GlobalSize())
	for _, e := range edges {
		for _, uv := range [][2]int{e, {e[1], e[0]}} {
			if d.Owner(uv[0]) != rank {
				continue
			}
			if err := b.Add(uv[0], uv[1], float64(1+e[0])); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}

func TestBuild_DisconnectedNullSpace(t *testing.T) {
	t.Parallel()

	d, err := dist.NewCyclic(7, 3)
	require.NoError(t, err)
	run(t, 3, func(c *dist.Comm) error {
		adj, err := twoTriangles(d, c.Rank())
		if err != nil {
			return err
		}
		if err := matrix.CheckAdjacency(c, adj); err != nil {
			return err
		}
		g, err := matrix.GatherGraph(c, adj)
		if err != nil {
			return err
		}
		components := len(topo.ConnectedComponents(g))

		lap, err := laplacian.Build(adj)
		if err != nil {
			return err
		}
		if d.Owner(6) == c.Rank() {
			assert.Zero(t, lap.Degree(d.LocalIndex(6)), "isolated row")
		}
		full, err := dense(c, lap)
		if err != nil {
			return err
		}

		var eig mat.EigenSym
		assert.True(t, eig.Factorize(mat.NewSymDense(7, full.RawMatrix().Data), false))
		zeros := 0
		for _, v := range eig.Values(nil) {
			assert.GreaterOrEqual(t, v, -1e-9, "PSD")
			if math.Abs(v) < 1e-9 {
				zeros++
			}
		}
		assert.Equal(t, 3, components)
		assert.Equal(t, components, zeros)
		return laplacian.CheckRowSums(c, lap, 1e-12)
	})
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := laplacian.Build(nil)
	require.ErrorIs(t, err, laplacian.ErrNilAdjacency)

	d, err := dist.NewBlock(3, 1)
	require.NoError(t, err)
	_, err = laplacian.Build(matrix.NewBuilder(d, 0, 4).Build())
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestCheckRowSums_Detects(t *testing.T) {
	t.Parallel()

	d, err := dist.NewBlock(4, 2)
	require.NoError(t, err)
	run(t, 2, func(c *dist.Comm) error {
		b := matrix.NewBuilder(d, c.Rank(), 4)
		for _, i := range dist.Owned(d, c.Rank()) {
			j := i ^ 1
			_ = b.Add(i, j, -1)
			_ = b.Add(i, i, 1)
		}
		if c.Rank() == 1 {
			_ = b.Add(3, 3, 0.5) // row 3 now sums to 0.5
		}
		err := laplacian.CheckRowSums(c, b.Build(), 1e-9)
		assert.ErrorIs(t, err, laplacian.ErrRowSum, fmt.Sprintf("rank %d", c.Rank()))
		return nil
	})
}
