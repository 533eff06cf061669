package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

func TestVector_Reductions(t *testing.T) {
	t.Parallel()

	const n = 10
	forEachLayout(t, n, func(t *testing.T, d dist.Distribution) {
		run(t, d, func(c *dist.Comm) error {
			x := matrix.NewVectorFunc(d, c.Rank(), func(i int) float64 { return float64(i) })
			y := matrix.NewVector(d, c.Rank())
			y.Fill(2)

			dot, err := x.Dot(c, y)
			if err != nil {
				return err
			}
			assert.Equal(t, 90.0, dot)

			sum, err := x.Sum(c)
			if err != nil {
				return err
			}
			assert.Equal(t, 45.0, sum)

			nrm, err := y.Norm2(c)
			if err != nil {
				return err
			}
			assert.InDelta(t, math.Sqrt(40), nrm, 1e-12)

			lo, hi, err := x.Range(c)
			if err != nil {
				return err
			}
			assert.Equal(t, 0.0, lo)
			assert.Equal(t, 9.0, hi)

			z := x.Clone()
			if err := z.AddScaled(-0.5, y); err != nil {
				return err
			}
			z.Scale(2)
			z.AddConst(1)
			got, err := z.Gather(c)
			if err != nil {
				return err
			}
			for i, v := range got {
				assert.Equal(t, 2*float64(i)-1, v)
			}

			moved, err := x.Redistribute(c, mustCyclic(t, n, c.Size()))
			if err != nil {
				return err
			}
			back, err := moved.Gather(c)
			if err != nil {
				return err
			}
			for i, v := range back {
				assert.Equal(t, float64(i), v)
			}
			_, err = x.Dot(c, moved)
			if !dist.Same(d, moved.Distribution()) {
				assert.ErrorIs(t, err, matrix.ErrDistributionMismatch)
				// Keep the collective sequence aligned on all ranks.
				_, err = c.AllReduceSum(0)
			}
			return err
		})
	})
}

func TestVector_At(t *testing.T) {
	t.Parallel()

	d, err := dist.NewBlock(4, 2)
	require.NoError(t, err)
	v := matrix.NewVectorFunc(d, 1, func(i int) float64 { return float64(10 * i) })
	got, err := v.At(3)
	require.NoError(t, err)
	require.Equal(t, 30.0, got)
	_, err = v.At(0)
	require.ErrorIs(t, err, matrix.ErrNotOwned)
}

func mustCyclic(t *testing.T, n, p int) dist.Distribution {
	t.Helper()
	d, err := dist.NewCyclic(n, p)
	require.NoError(t, err)
	return d
}

func TestVector_GatherThenOverwrite(t *testing.T) {
	t.Parallel()

	const n = 4000
	d, err := dist.NewBlock(n, 4)
	require.NoError(t, err)
	run(t, d, func(c *dist.Comm) error {
		v := matrix.NewVector(d, c.Rank())
		for round := range 5 {
			for l := range v.Local() {
				v.Local()[l] = float64(d.GlobalIndex(c.Rank(), l) + round)
			}
			all, err := v.Gather(c)
			if err != nil {
				return err
			}
			// The owner reuses its storage at once; the gathered copy is unaffected.
			v.Fill(-1)
			for i, x := range all {
				if !assert.Equal(t, float64(i+round), x, "rank %d round %d index %d", c.Rank(), round, i) {
					break
				}
			}
		}
		return nil
	})
}
