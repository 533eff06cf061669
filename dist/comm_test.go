package dist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/geomesh/dist"
)

func TestRun_Collectives(t *testing.T) {
	t.Parallel()

	for _, p := range []int{1, 2, 5} {
		err := dist.Run(context.Background(), p, func(_ context.Context, c *dist.Comm) error {
			r := c.Rank()

			sum, err := c.AllReduceSum(float64(r + 1))
			if err != nil {
				return err
			}
			assert.Equal(t, float64(p*(p+1)/2), sum)

			sums, err := c.AllReduceSums([]float64{1, float64(r)})
			if err != nil {
				return err
			}
			assert.Equal(t, []float64{float64(p), float64(p * (p - 1) / 2)}, sums)

			mx, err := c.AllReduceMaxInt(r * 3)
			if err != nil {
				return err
			}
			assert.Equal(t, (p-1)*3, mx)

			cnt, err := c.AllReduceSumInt(1)
			if err != nil {
				return err
			}
			assert.Equal(t, p, cnt)

			v, err := dist.Broadcast(c, r*10+7, p-1)
			if err != nil {
				return err
			}
			assert.Equal(t, (p-1)*10+7, v)

			all, err := dist.AllGather(c, r)
			if err != nil {
				return err
			}
			for i, got := range all {
				assert.Equal(t, i, got)
			}

			send := make([][]int, p)
			for j := range send {
				send[j] = []int{r, j}
			}
			recv, err := dist.AllToAll(c, send)
			if err != nil {
				return err
			}
			for src, msg := range recv {
				assert.Equal(t, []int{src, r}, msg)
			}
			return c.Barrier()
		})
		assert.NoError(t, err)
	}
}

func TestRun_AllReduceSumsBufferReuse(t *testing.T) {
	t.Parallel()

	const p = 4
	err := dist.Run(context.Background(), p, func(_ context.Context, c *dist.Comm) error {
		buf := make([]float64, 64)
		for round := range 20 {
			for i := range buf {
				buf[i] = float64(round)
			}
			sums, err := c.AllReduceSums(buf)
			if err != nil {
				return err
			}
			// Overwrite before peers are guaranteed to have summed.
			for i := range buf {
				buf[i] = -1
			}
			for _, s := range sums {
				if !assert.Equal(t, float64(p*round), s, "rank %d round %d", c.Rank(), round) {
					break
				}
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestRun_AbortUnblocksPeers(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := dist.Run(context.Background(), 3, func(_ context.Context, c *dist.Comm) error {
		if c.Rank() == 1 {
			return boom
		}
		// Peers block here until rank 1's failure aborts the group.
		_, err := c.AllReduceSum(1)
		assert.ErrorIs(t, err, dist.ErrAborted)
		return err
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRun_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	err := dist.Run(ctx, 2, func(_ context.Context, c *dist.Comm) error {
		if c.Rank() == 0 {
			cancel()
		}
		for {
			if err := c.Barrier(); err != nil {
				return err
			}
		}
	})
	assert.ErrorIs(t, err, dist.ErrAborted)
}

func TestRun_Invalid(t *testing.T) {
	t.Parallel()

	err := dist.Run(context.Background(), 0, func(context.Context, *dist.Comm) error { return nil })
	assert.ErrorIs(t, err, dist.ErrBadWorkers)

	err = dist.Run(context.Background(), 2, func(_ context.Context, c *dist.Comm) error {
		_, err := dist.Broadcast(c, 1, 9)
		return err
	})
	assert.ErrorIs(t, err, dist.ErrBadRoot)

	err = dist.Run(context.Background(), 2, func(_ context.Context, c *dist.Comm) error {
		_, err := dist.AllToAll(c, []int{1})
		return err
	})
	assert.ErrorIs(t, err, dist.ErrBadMessage)
}

func TestAgreeSeed(t *testing.T) {
	t.Parallel()

	seeds := make([]int64, 4)
	err := dist.Run(context.Background(), 4, func(_ context.Context, c *dist.Comm) error {
		// Every rank proposes something different; only the root's draw counts.
		s, err := dist.AgreeSeed(c, 0, 0)
		seeds[c.Rank()] = s
		return err
	})
	assert.NoError(t, err)
	assert.NotZero(t, seeds[0])
	for _, s := range seeds {
		assert.Equal(t, seeds[0], s)
	}

	err = dist.Run(context.Background(), 3, func(_ context.Context, c *dist.Comm) error {
		s, err := dist.AgreeSeed(c, int64(100+c.Rank()), 2)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(102), s)
		return nil
	})
	assert.NoError(t, err)
}
