// Package mesh generates spatial mesh graphs together with their node
// coordinates, laid out over a caller-supplied row distribution.
//
// The package offers three generators:
//
//   - Structured:  regular 2D/3D grid, 4-/6-neighbourhood, coordinates on the
//     lattice spanning [0, maxCoord[k]] per axis.
//   - Randomized:  the same topology with every coordinate perturbed by bounded
//     noise; connectivity is never affected.
//   - Clustered:   numberOfAreas Gaussian point clouds inside the bounding
//     square/cube, linked into a symmetric k-nearest-neighbour graph found
//     through an arena quad-tree (2D) or oct-tree (3D).
//
// Guarantees:
//
//   - Distribution independence: the global graph and coordinates depend only
//     on the parameters and the agreed seed, never on the worker count or on
//     the distribution (block, cyclic or general).
//   - Coordinates are co-distributed with the adjacency rows.
//   - Every result passes matrix.CheckAdjacency before it is returned; a failed
//     check returns an error matching matrix.ErrInconsistent and no mesh.
//   - Invalid parameters are rejected before any collective call, on every
//     worker alike.
//
// Configuration flows through functional options (WithSeed, WithJitter,
// WithNeighbors, WithLeafSize, WithWeight, WithWeightFn, WithLogger); option
// constructors panic on meaningless values, generators never panic.
package mesh
