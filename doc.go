// Package geomesh generates spatial mesh graphs over a group of cooperating
// workers and computes diffusion potentials and random projections on them.
//
// 🚀 What is geomesh?
//
//	A row-distributed pipeline, every stage keeping the row layout of the last:
//		• Distributions & collectives: block, cyclic and general layouts over an in-process worker group
//		• Sparse substrate: distributed CSR, vectors, halo-exchange MatVec, consistency checks
//		• Meshes: structured, randomized and clustered 2D/3D graphs with coordinates
//		• Laplacians: L = D - A, row-sum and symmetry checks
//		• Diffusion: projected conjugate gradients, single/multi/landmark sources
//		• FJLT: Hadamard matrices and fast Johnson–Lindenstrauss transforms
//
// ✨ Guarantees
//
//   - Distribution independence: the same parameters yield the same global
//     graph, and numerically equivalent potentials, on any layout.
//   - Agree-then-use randomness: every seed is broadcast before it is used.
//   - Fail loudly: invalid input and broken structure are reported as
//     sentinel errors, never silently repaired.
//
// Under the hood the module is organized as:
//
//	dist/      — distributions, worker group, collectives, seed agreement
//	matrix/    — distributed CSR matrix and dense vector
//	mesh/      — mesh generators and the spatial tree
//	laplacian/ — Laplacian construction
//	diffusion/ — potential solvers and their metrics
//	fjlt/      — Hadamard and FJLT builders
//	examples/  — an end-to-end landmark embedding
//
//	go get github.com/katalvlaran/geomesh
package geomesh
