// SPDX-License-Identifier: MIT
// Package: geomesh/dist
//
// comm.go — worker group lifecycle and the exchange primitive that every
// collective is built on.
//
// Model:
//   • Run starts a flat group of p workers as goroutines (errgroup).
//   • Each worker receives its own *Comm; a Comm must not be shared.
//   • exchange(send) is a personalized all-to-all: send[j] is delivered to
//     rank j, the result holds one message per source rank (rank order).
//   • Two barriers bracket each exchange: slots are written, all workers
//     arrive, slots are read, all workers arrive again before reuse.
//   • abort() wakes every waiter; subsequent collectives fail with ErrAborted.

package dist

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const methodRun = "Run"

// group is the state shared by all workers of one Run.
type group struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int    // workers waiting at the current barrier
	gen     uint64 // barrier generation; bumps when the last worker arrives
	slots   [][]any
	err     error // non-nil once aborted
}

func newGroup(size int) *group {
	g := &group{size: size, slots: make([][]any, size)}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// barrierLocked blocks until all workers arrived. g.mu must be held.
func (g *group) barrierLocked() error {
	if g.err != nil {
		return g.err
	}
	gen := g.gen
	g.arrived++
	if g.arrived == g.size {
		g.arrived = 0
		g.gen++
		g.cond.Broadcast()
		return nil
	}
	for gen == g.gen && g.err == nil {
		g.cond.Wait()
	}
	if gen == g.gen {
		return g.err
	}
	return nil
}

func (g *group) exchange(rank int, send []any) ([]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.slots[rank] = send
	if err := g.barrierLocked(); err != nil {
		return nil, err
	}
	recv := make([]any, g.size)
	for src := 0; src < g.size; src++ {
		recv[src] = g.slots[src][rank]
	}
	if err := g.barrierLocked(); err != nil {
		return nil, err
	}
	return recv, nil
}

func (g *group) abort(cause error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = fmt.Errorf("%w: %w", ErrAborted, cause)
		g.cond.Broadcast()
	}
}

// Comm is one worker's handle on its group.
type Comm struct {
	rank int
	g    *group
	log  zerolog.Logger
}

// Rank is this worker's id in [0, Size()).
func (c *Comm) Rank() int { return c.rank }

// Size is the number of workers in the group.
func (c *Comm) Size() int { return c.g.size }

// Logger returns the worker logger, tagged with its rank.
func (c *Comm) Logger() zerolog.Logger { return c.log }

// Barrier blocks until every worker called Barrier.
func (c *Comm) Barrier() error {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	return c.g.barrierLocked()
}

// RunOption customizes Run.
type RunOption func(*runConfig)

type runConfig struct {
	log zerolog.Logger
}

// WithLogger attaches a base logger; each worker derives a child with a
// "rank" field.
func WithLogger(l zerolog.Logger) RunOption {
	return func(c *runConfig) { c.log = l }
}

// Run executes fn on `workers` cooperating goroutines and waits for all of them.
// The first non-nil error aborts the group and is returned; cancelling ctx
// aborts the group as well.
//
// Complexity: O(workers) goroutines; collectives cost O(workers) per call.
func Run(ctx context.Context, workers int, fn func(ctx context.Context, c *Comm) error, opts ...RunOption) error {
	if workers < 1 {
		return fmt.Errorf("%s: workers=%d: %w", methodRun, workers, ErrBadWorkers)
	}
	cfg := runConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	grp := newGroup(workers)
	eg, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, func() { grp.abort(context.Cause(ctx)) })
	defer stop()

	for rank := 0; rank < workers; rank++ {
		c := &Comm{rank: rank, g: grp, log: cfg.log.With().Int("rank", rank).Logger()}
		eg.Go(func() error {
			if err := fn(ctx, c); err != nil {
				grp.abort(err)
				return err
			}
			return nil
		})
	}
	return eg.Wait()
}
