// SPDX-License-Identifier: MIT
// Package: geomesh/dist
//
// collective.go — reductions, broadcast, gather and personalized exchange.
//
// Contract:
//   • Every function is collective: all workers of the group must call it in
//     the same order with compatible arguments.
//   • Reductions accumulate in ascending rank order, identical on every worker.
//   • Payloads are passed by reference inside the process. Peers may still be
//     reading a payload after the sender returns, so the sender must not
//     mutate it afterwards, and receivers must not mutate slices they did not
//     allocate. Send a private copy of storage that outlives the call.

package dist

import (
	"fmt"
	"slices"
)

const (
	methodBroadcast     = "Broadcast"
	methodAllToAll      = "AllToAll"
	methodAllReduceSums = "AllReduceSums"
)

// replicate sends v to every rank.
func (c *Comm) replicate(v any) ([]any, error) {
	send := make([]any, c.Size())
	for i := range send {
		send[i] = v
	}
	return c.g.exchange(c.rank, send)
}

// AllReduceSum returns the global sum of x.
func (c *Comm) AllReduceSum(x float64) (float64, error) {
	recv, err := c.replicate(x)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range recv {
		sum += v.(float64)
	}
	return sum, nil
}

// AllReduceSums returns the element-wise global sum of xs. All workers must
// pass vectors of the same length. Fusing several scalars in one call costs a
// single synchronization.
func (c *Comm) AllReduceSums(xs []float64) ([]float64, error) {
	recv, err := c.replicate(slices.Clone(xs))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for src, v := range recv {
		part := v.([]float64)
		if len(part) != len(xs) {
			return nil, fmt.Errorf("%s: rank %d sent %d values, want %d: %w",
				methodAllReduceSums, src, len(part), len(xs), ErrBadMessage)
		}
		for i, p := range part {
			out[i] += p
		}
	}
	return out, nil
}

// AllReduceSumInt returns the global sum of x.
func (c *Comm) AllReduceSumInt(x int) (int, error) {
	recv, err := c.replicate(x)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, v := range recv {
		sum += v.(int)
	}
	return sum, nil
}

// AllReduceMaxInt returns the global maximum of x.
func (c *Comm) AllReduceMaxInt(x int) (int, error) {
	recv, err := c.replicate(x)
	if err != nil {
		return 0, err
	}
	best := recv[0].(int)
	for _, v := range recv[1:] {
		best = max(best, v.(int))
	}
	return best, nil
}

// Broadcast returns root's v on every worker; other workers' v is ignored.
func Broadcast[T any](c *Comm, v T, root int) (T, error) {
	var zero T
	if root < 0 || root >= c.Size() {
		return zero, fmt.Errorf("%s: root=%d, size=%d: %w", methodBroadcast, root, c.Size(), ErrBadRoot)
	}
	recv, err := c.replicate(v)
	if err != nil {
		return zero, err
	}
	return recv[root].(T), nil
}

// AllGather returns every worker's v, indexed by rank.
func AllGather[T any](c *Comm, v T) ([]T, error) {
	recv, err := c.replicate(v)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(recv))
	for i, r := range recv {
		out[i] = r.(T)
	}
	return out, nil
}

// AllToAll delivers send[j] to rank j and returns the messages addressed to
// this worker, indexed by source rank. len(send) must equal Size().
func AllToAll[T any](c *Comm, send []T) ([]T, error) {
	if len(send) != c.Size() {
		return nil, fmt.Errorf("%s: len(send)=%d, size=%d: %w", methodAllToAll, len(send), c.Size(), ErrBadMessage)
	}
	msgs := make([]any, len(send))
	for i, m := range send {
		msgs[i] = m
	}
	recv, err := c.g.exchange(c.rank, msgs)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(recv))
	for i, r := range recv {
		out[i] = r.(T)
	}
	return out, nil
}
