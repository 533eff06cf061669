// Package matrix provides the row-distributed sparse matrix and dense vector
// types that geomesh builds its graphs, Laplacians and potentials on.
//
// Storage model:
//
//   - CSR holds the rows a worker owns, in local order, with GLOBAL column
//     indices sorted ascending per row. Columns are addressed globally so a
//     row never needs to know where its neighbours live.
//   - Vector holds the owned slice of a dense global vector.
//   - Both reference a dist.Distribution (read-only) that maps global rows to
//     owners; redistribution produces new storage and never aliases old rows.
//
// Distributed operations take the worker's *dist.Comm and are collective:
//
//   - CSR.MatVec:       halo exchange of ghost entries, then a local product.
//   - Vector.Dot/Norm2: local kernel (gonum/floats) + one reduction.
//   - CheckAdjacency:   shape, range, self-loop, weight and symmetry checks,
//     with a verdict that is identical on every worker.
//   - ConnectedComponents: min-label propagation over the MatVec halo plan.
//   - GatherEntries / GatherGraph: a single global view for comparisons.
//
// Local kernels never panic on user input; they return the sentinels of
// errors.go wrapped with an operation tag.
package matrix
