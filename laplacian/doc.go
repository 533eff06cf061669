// Package laplacian builds the combinatorial Laplacian L = D - A of a
// row-distributed weighted graph.
//
// L keeps the distribution of the adjacency it was built from, so a solver can
// use it next to the mesh coordinates and weight vectors without moving data.
// The construction is purely local: every worker turns its own rows of A into
// the same rows of L, and the input matrix is never modified.
//
// Properties of the result:
//
//   - symmetric whenever A is, and positive semidefinite for non-negative weights;
//   - every row sums to zero (CheckRowSums verifies it collectively);
//   - L_ii equals the weighted degree of node i (Degrees);
//   - one null-space dimension per connected component; an isolated node
//     yields an empty row.
package laplacian
