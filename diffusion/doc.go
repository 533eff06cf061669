// Package diffusion computes diffusion (electrical) potentials on a weighted
// graph from its row-distributed Laplacian.
//
// Boundary convention:
//
// Every node i injects its weight w_i and the source s absorbs the total
// W = Σ w. The right-hand side is therefore
//
//	b_i = w_i      (i ≠ s)
//	b_s = w_s - W
//
// which sums to zero, so L x = b is consistent on a connected graph. The
// solution is unique up to an additive constant; the returned potentials are
// normalized to zero mean.
//
// Solver:
//
// Conjugate gradients in the subspace orthogonal to the all-ones vector. The
// right-hand side, every residual and every search direction are projected
// explicitly (x ↦ x - mean(x)). Each iteration costs one halo exchange for
// L·p and two fused reductions; convergence is ‖r‖ ≤ eps·‖b‖. A solve that
// runs out of iterations returns *NotConvergedError unless the caller opts in
// with WithAcceptLastIterate.
//
// Multi-source solves run one single-source solve per source and gather each
// potential field into a row of a dense k×n matrix replicated on every
// worker. Landmark sources are drawn from a seed agreed by all workers first,
// so every worker selects the same set.
//
// All entry points are collective: every worker of the group must call them
// with the same arguments.
package diffusion
