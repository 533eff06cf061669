// SPDX-License-Identifier: MIT
// Package: geomesh/mesh
//
// spatial_tree.go — arena quad-tree (2D) / oct-tree (3D) over a point array,
// with exact k-nearest-neighbour queries.
//
// Layout:
//   • nodes is a flat arena; children of a node are 2^dims consecutive slots
//     starting at child (child < 0 marks a leaf).
//   • Every node covers the contiguous range perm[start:end] of point
//     indices, so the tree holds no pointers and could be shipped as is.
//
// Determinism:
//   • Bucketing is stable; ties in distance are broken by point index, so a
//     query returns the same neighbours whatever the traversal order.

package mesh

import (
	"cmp"
	"container/heap"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

type treeNode struct {
	lo, hi     r3.Vec
	start, end int
	child      int
}

type spatialTree struct {
	dims  int
	pts   []r3.Vec
	perm  []int
	nodes []treeNode
}

// newSpatialTree indexes pts (Z ignored when dims == 2) inside the box [lo, hi].
func newSpatialTree(pts []r3.Vec, dims int, lo, hi r3.Vec, leafSize int) *spatialTree {
	t := &spatialTree{dims: dims, pts: pts, perm: make([]int, len(pts))}
	for i := range t.perm {
		t.perm[i] = i
	}
	t.nodes = append(t.nodes, treeNode{lo: lo, hi: hi, start: 0, end: len(pts), child: -1})
	t.split(0, 0, leafSize)
	return t
}

func (t *spatialTree) octant(p, mid r3.Vec) int {
	o := 0
	if p.X >= mid.X {
		o |= 1
	}
	if p.Y >= mid.Y {
		o |= 2
	}
	if t.dims == 3 && p.Z >= mid.Z {
		o |= 4
	}
	return o
}

func (t *spatialTree) split(ni, depth, leafSize int) {
	nd := t.nodes[ni]
	if nd.end-nd.start <= leafSize || depth >= maxTreeDepth {
		return
	}
	fan := 1 << t.dims
	mid := r3.Scale(0.5, r3.Add(nd.lo, nd.hi))

	// Stable counting sort of the range by octant.
	counts := make([]int, fan+1)
	for _, pi := range t.perm[nd.start:nd.end] {
		counts[t.octant(t.pts[pi], mid)+1]++
	}
	for o := 1; o <= fan; o++ {
		counts[o] += counts[o-1]
	}
	sorted := make([]int, nd.end-nd.start)
	fill := slices.Clone(counts[:fan])
	for _, pi := range t.perm[nd.start:nd.end] {
		o := t.octant(t.pts[pi], mid)
		sorted[fill[o]] = pi
		fill[o]++
	}
	copy(t.perm[nd.start:nd.end], sorted)

	first := len(t.nodes)
	t.nodes[ni].child = first
	for o := 0; o < fan; o++ {
		lo, hi := nd.lo, nd.hi
		if o&1 != 0 {
			lo.X = mid.X
		} else {
			hi.X = mid.X
		}
		if o&2 != 0 {
			lo.Y = mid.Y
		} else {
			hi.Y = mid.Y
		}
		if t.dims == 3 {
			if o&4 != 0 {
				lo.Z = mid.Z
			} else {
				hi.Z = mid.Z
			}
		}
		t.nodes = append(t.nodes, treeNode{
			lo: lo, hi: hi,
			start: nd.start + counts[o], end: nd.start + counts[o+1],
			child: -1,
		})
	}
	for o := 0; o < fan; o++ {
		t.split(first+o, depth+1, leafSize)
	}
}

// boxDist2 is the squared distance from p to the box of node ni.
func (t *spatialTree) boxDist2(ni int, p r3.Vec) float64 {
	nd := &t.nodes[ni]
	gap := func(v, lo, hi float64) float64 {
		switch {
		case v < lo:
			return lo - v
		case v > hi:
			return v - hi
		}
		return 0
	}
	dx, dy, dz := gap(p.X, nd.lo.X, nd.hi.X), gap(p.Y, nd.lo.Y, nd.hi.Y), gap(p.Z, nd.lo.Z, nd.hi.Z)
	return dx*dx + dy*dy + dz*dz
}

type candidate struct {
	d2  float64
	idx int
}

func closer(a, b candidate) bool {
	return a.d2 < b.d2 || (a.d2 == b.d2 && a.idx < b.idx)
}

// worstFirst is a max-heap of the current k best candidates.
type worstFirst []candidate

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *worstFirst) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// nearestBox is a min-heap of tree nodes by box distance.
type nearestBox []candidate

func (h nearestBox) Len() int           { return len(h) }
func (h nearestBox) Less(i, j int) bool { return h[i].d2 < h[j].d2 }
func (h nearestBox) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nearestBox) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *nearestBox) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// knn returns the k points closest to point q (q itself excluded), ordered
// by (distance, index).
func (t *spatialTree) knn(q, k int) []int {
	if k <= 0 {
		return nil
	}
	p := t.pts[q]
	best := &worstFirst{}
	queue := &nearestBox{{d2: 0, idx: 0}}
	for queue.Len() > 0 {
		top := heap.Pop(queue).(candidate)
		if best.Len() == k && top.d2 > (*best)[0].d2 {
			break
		}
		nd := &t.nodes[top.idx]
		if nd.child >= 0 {
			for o := 0; o < 1<<t.dims; o++ {
				ci := nd.child + o
				if t.nodes[ci].start == t.nodes[ci].end {
					continue
				}
				heap.Push(queue, candidate{d2: t.boxDist2(ci, p), idx: ci})
			}
			continue
		}
		for _, pi := range t.perm[nd.start:nd.end] {
			if pi == q {
				continue
			}
			cand := candidate{d2: r3.Norm2(r3.Sub(t.pts[pi], p)), idx: pi}
			switch {
			case best.Len() < k:
				heap.Push(best, cand)
			case closer(cand, (*best)[0]):
				(*best)[0] = cand
				heap.Fix(best, 0)
			}
		}
	}

	out := slices.Clone(*best)
	slices.SortFunc(out, func(a, b candidate) int {
		if c := cmp.Compare(a.d2, b.d2); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
	idx := make([]int, len(out))
	for i, c := range out {
		idx[i] = c.idx
	}
	return idx
}
