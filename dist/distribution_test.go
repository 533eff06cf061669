package dist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geomesh/dist"
)

// checkRoundTrip verifies that Owner/LocalIndex/GlobalIndex are mutually
// consistent and that local sizes add up to n.
func checkRoundTrip(t *testing.T, d dist.Distribution) {
	t.Helper()
	total := 0
	for r := 0; r < d.Workers(); r++ {
		total += d.LocalSize(r)
		prev := -1
		for l := 0; l < d.LocalSize(r); l++ {
			g := d.GlobalIndex(r, l)
			require.Greater(t, g, prev, "%s: globals must ascend on rank %d", d, r)
			prev = g
			require.Equal(t, r, d.Owner(g))
			require.Equal(t, l, d.LocalIndex(g))
		}
	}
	require.Equal(t, d.GlobalSize(), total)
}

func TestDistributions_RoundTrip(t *testing.T) {
	t.Parallel()

	owners := []int{2, 0, 0, 1, 2, 2, 1, 0, 1, 1}
	general, err := dist.NewGeneral(owners, 3)
	require.NoError(t, err)

	for _, tc := range []struct{ n, p int }{{1, 1}, {10, 3}, {3, 5}, {17, 4}, {64, 8}} {
		b, err := dist.NewBlock(tc.n, tc.p)
		require.NoError(t, err)
		checkRoundTrip(t, b)

		c, err := dist.NewCyclic(tc.n, tc.p)
		require.NoError(t, err)
		checkRoundTrip(t, c)
	}
	checkRoundTrip(t, general)
	require.Equal(t, []int{1, 2, 7}, dist.Owned(general, 0))
}

func TestBlock_Layout(t *testing.T) {
	t.Parallel()

	d, err := dist.NewBlock(10, 3)
	require.NoError(t, err)
	// 10 = 4 + 3 + 3
	require.Equal(t, []int{4, 3, 3}, []int{d.LocalSize(0), d.LocalSize(1), d.LocalSize(2)})
	require.Equal(t, 0, d.Owner(3))
	require.Equal(t, 1, d.Owner(4))
	require.Equal(t, 2, d.Owner(9))
	require.Equal(t, 2, d.LocalIndex(9))
}

func TestDistributions_Invalid(t *testing.T) {
	t.Parallel()

	_, err := dist.NewBlock(0, 2)
	require.ErrorIs(t, err, dist.ErrBadDistribution)
	_, err = dist.NewCyclic(4, 0)
	require.ErrorIs(t, err, dist.ErrBadDistribution)
	_, err = dist.NewGeneral([]int{0, 3}, 2)
	require.ErrorIs(t, err, dist.ErrBadDistribution)
	_, err = dist.NewGeneral(nil, 2)
	require.ErrorIs(t, err, dist.ErrBadDistribution)
}

func TestSame(t *testing.T) {
	t.Parallel()

	b, _ := dist.NewBlock(6, 2)
	c, _ := dist.NewCyclic(6, 2)
	g, _ := dist.NewGeneral([]int{0, 0, 0, 1, 1, 1}, 2)
	one, _ := dist.NewCyclic(6, 1)
	oneBlock, _ := dist.NewBlock(6, 1)

	require.True(t, dist.Same(b, g))
	require.False(t, dist.Same(b, c))
	require.True(t, dist.Same(one, oneBlock))
	require.False(t, dist.Same(b, nil))
}
