// SPDX-License-Identifier: MIT
// Package: geomesh/diffusion
//
// solve.go — single- and multi-source potential solves.

package diffusion

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/matrix"
)

const (
	methodSolveSingle    = "SolveSingle"
	methodSolveMulti     = "SolveMulti"
	methodSolveLandmarks = "SolveLandmarks"
)

// Result is one worker's part of a single-source solve.
type Result struct {
	Source     int
	Potentials *matrix.Vector // zero mean, distributed like the Laplacian rows
	Iterations int
	Residual   float64 // relative, ‖r‖/‖b‖
	Converged  bool
}

// MultiResult holds one potential field per source, replicated on every worker.
type MultiResult struct {
	Sources    []int
	Potentials *mat.Dense // len(Sources) × n, row k belongs to Sources[k]
	Iterations []int
	Converged  []bool
}

// SolveSingle computes the diffusion potentials of source on the graph with
// Laplacian lap and node weights w (see the package documentation for the
// boundary convention). Collective.
func SolveSingle(c *dist.Comm, lap *matrix.CSR, w *matrix.Vector, source int, eps float64, opts ...Option) (*Result, error) {
	cfg := newSolverConfig(opts...)
	if err := validateOperator(methodSolveSingle, c, lap, eps); err != nil {
		return nil, err
	}
	if source < 0 || source >= lap.Rows() {
		return nil, fmt.Errorf("%s: source %d not in [0,%d): %w", methodSolveSingle, source, lap.Rows(), ErrBadSource)
	}
	if err := validateWeights(methodSolveSingle, c, lap, w); err != nil {
		return nil, err
	}
	if cfg.connectivity {
		if err := validateConnected(methodSolveSingle, c, lap); err != nil {
			return nil, err
		}
	}
	total, err := w.Sum(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolveSingle, err)
	}
	res, err := solve(c, lap, w, total, source, eps, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolveSingle, err)
	}
	return res, nil
}

// solve runs one validated solve. total is Σ w.
func solve(c *dist.Comm, lap *matrix.CSR, w *matrix.Vector, total float64, source int, eps float64, cfg solverConfig) (*Result, error) {
	start := time.Now()

	b := w.Clone()
	d := lap.Distribution()
	if d.Owner(source) == c.Rank() {
		b.Local()[d.LocalIndex(source)] -= total
	}

	maxIter := cfg.iterationBound(lap.Rows())
	cg, err := projectedCG(c, lap, b, eps, maxIter)
	if err != nil {
		return nil, err
	}

	outcome := OutcomeConverged
	switch {
	case cg.converged:
	case cfg.acceptLast:
		outcome = OutcomeAccepted
	default:
		outcome = OutcomeNotConverged
	}
	if c.Rank() == 0 {
		cfg.metrics.observe(outcome, cg.iterations, time.Since(start))
		ev := cfg.log.Debug()
		if !cg.converged {
			ev = cfg.log.Warn()
		}
		ev.Int("source", source).
			Int("nodes", lap.Rows()).
			Int("iterations", cg.iterations).
			Float64("residual", cg.residual).
			Str("outcome", outcome).
			Msg("diffusion solve")
	}

	if outcome == OutcomeNotConverged {
		return nil, &NotConvergedError{
			Source:     source,
			Iterations: cg.iterations,
			Residual:   cg.residual,
			Tolerance:  eps,
		}
	}
	return &Result{
		Source:     source,
		Potentials: cg.x,
		Iterations: cg.iterations,
		Residual:   cg.residual,
		Converged:  cg.converged,
	}, nil
}

// SolveMulti runs one single-source solve per entry of sources and gathers
// the fields into a len(sources)×n matrix replicated on every worker.
// Sources must be distinct and in [0, n). Collective.
func SolveMulti(c *dist.Comm, lap *matrix.CSR, w *matrix.Vector, sources []int, eps float64, opts ...Option) (*MultiResult, error) {
	cfg := newSolverConfig(opts...)
	if err := validateOperator(methodSolveMulti, c, lap, eps); err != nil {
		return nil, err
	}
	if err := validateSources(methodSolveMulti, sources, lap.Rows()); err != nil {
		return nil, err
	}
	if err := validateWeights(methodSolveMulti, c, lap, w); err != nil {
		return nil, err
	}
	if cfg.connectivity {
		if err := validateConnected(methodSolveMulti, c, lap); err != nil {
			return nil, err
		}
	}
	total, err := w.Sum(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolveMulti, err)
	}

	n := lap.Rows()
	out := &MultiResult{
		Sources:    append([]int(nil), sources...),
		Potentials: mat.NewDense(len(sources), n, nil),
		Iterations: make([]int, len(sources)),
		Converged:  make([]bool, len(sources)),
	}
	for k, s := range sources {
		res, err := solve(c, lap, w, total, s, eps, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: source #%d: %w", methodSolveMulti, k, err)
		}
		row, err := res.Potentials.Gather(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodSolveMulti, err)
		}
		out.Potentials.SetRow(k, row)
		out.Iterations[k] = res.Iterations
		out.Converged[k] = res.Converged
	}
	return out, nil
}

// SolveLandmarks samples k landmark sources with SampleLandmarks and solves
// for all of them. Collective.
func SolveLandmarks(c *dist.Comm, lap *matrix.CSR, w *matrix.Vector, k int, seed int64, eps float64, opts ...Option) (*MultiResult, error) {
	if err := validateOperator(methodSolveLandmarks, c, lap, eps); err != nil {
		return nil, err
	}
	sources, err := SampleLandmarks(c, lap.Rows(), k, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolveLandmarks, err)
	}
	res, err := SolveMulti(c, lap, w, sources, eps, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolveLandmarks, err)
	}
	return res, nil
}

func validateSources(method string, sources []int, n int) error {
	if len(sources) == 0 {
		return fmt.Errorf("%s: no sources: %w", method, ErrBadSource)
	}
	seen := make(map[int]struct{}, len(sources))
	for _, s := range sources {
		if s < 0 || s >= n {
			return fmt.Errorf("%s: source %d not in [0,%d): %w", method, s, n, ErrBadSource)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%s: source %d: %w", method, s, ErrDuplicateSource)
		}
		seen[s] = struct{}{}
	}
	return nil
}
