package diffusion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
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

func reversed(n, p int) (dist.Distribution, error) {
	owners := make([]int, n)
	for i := range owners {
		owners[i] = (p - 1) - (i*p)/n
	}
	return dist.NewGeneral(owners, p)
}

// gridLaplacian builds the Laplacian of an X×Y grid with weights in [1,2).
func gridLaplacian(c *dist.Comm, d dist.Distribution, x, y int) (*matrix.CSR, error) {
	m, err := mesh.Structured(c, d, []int{x, y}, []float64{1, 1}, mesh.WithWeightFn(mesh.UniformWeightFn(1, 2, 17)))
	if err != nil {
		return nil, err
	}
	return laplacian.Build(m.Adjacency)
}

// referencePotentials solves (L + 11ᵀ) x = b densely; for b ⟂ 1 this is the
// zero-mean solution of L x = b.
func referencePotentials(c *dist.Comm, lap *matrix.CSR, w []float64, source int) ([]float64, error) {
	entries, err := matrix.GatherEntries(c, lap)
	if err != nil {
		return nil, err
	}
	n := lap.Rows()
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, 1)
		}
	}
	for _, e := range entries {
		a.Set(e.Row, e.Col, a.At(e.Row, e.Col)+e.Value)
	}
	b := mat.NewVecDense(n, append([]float64(nil), w...))
	var total float64
	for _, v := range w {
		total += v
	}
	b.SetVec(source, b.AtVec(source)-total)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, err
	}
	return x.RawVector().Data, nil
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
