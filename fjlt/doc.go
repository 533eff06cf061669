// Package fjlt builds Fast Johnson–Lindenstrauss transforms.
//
// A transform is M = (1/√k)·P·H·D restricted to its first origDimension
// columns, where for d' = nextPow2(origDimension):
//
//   - D is a d'×d' diagonal of random signs;
//   - H is the normalized d'×d' Hadamard matrix (Sylvester order);
//   - P is a k×d' sparse matrix whose entries are non-zero with probability
//     q = min(1, ln²n / d') and then drawn from N(0, 1/q);
//   - k = TargetDimension(epsilon, n) = ⌈2·ln n / ε²⌉.
//
// M maps origDimension-dimensional vectors to k dimensions and preserves the
// pairwise distances of n points up to a factor 1±ε with high probability.
// Matrix() materializes M as a dense k×origDimension matrix; Apply evaluates
// M·x in O(d' log d' + nnz(P)) with an in-place fast Walsh–Hadamard transform.
//
// Randomness flows from a single seed. NewShared agrees the seed across a
// worker group first, so every worker builds the same transform.
package fjlt
