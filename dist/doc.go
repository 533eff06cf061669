// Package dist provides the row-distribution and communication substrate that
// every co-distributed structure in geomesh is built on.
//
// The package offers two orthogonal pieces:
//
//   - Distribution: an immutable mapping from a global index to the worker
//     that owns it and to the local offset on that worker.
//     – NewBlock:   contiguous blocks, the first n mod p blocks one row larger.
//     – NewCyclic:  round-robin, global i lives on worker i mod p.
//     – NewGeneral: derived from a partition (owner per global index).
//   - Comm: the per-worker handle of a flat worker group started by Run.
//     Workers share nothing; every cross-worker exchange is an explicit
//     collective (Barrier, AllReduce*, Broadcast, AllGather, AllToAll).
//
// Guarantees:
//
//   - Distributions are never mutated after construction and may be shared by
//     any number of structures.
//   - Every collective is a synchronization barrier: no worker proceeds until
//     all workers reached it.
//   - Reductions run in rank order, so all workers observe bit-identical sums.
//   - A failing worker aborts the group; peers blocked in a collective get
//     ErrAborted instead of deadlocking.
//
// Shared randomness follows an agree-then-use protocol (AgreeSeed): a single
// root resolves the seed and broadcasts it before anybody draws from it.
package dist
