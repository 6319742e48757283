/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package native solves integer linear programs in process.
//
// LP relaxations are delegated to gonum's simplex implementation; this package
// converts models to the standard form gonum expects and runs a depth-first
// branch-and-bound over the integer variables.
package native

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-production-planner/internal/logging"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

const (
	// Name is the backend name reported in results and metrics.
	Name = "native"

	DefaultTolerance = 1e-6
	DefaultMaxNodes  = 100000
)

// simplexTolerances are the reduced-cost tolerances tried, in order, for each
// relaxation. A zero tolerance lets rounding noise keep degenerate pivots going.
var simplexTolerances = []float64{1e-10, 1e-8, 1e-6}

var (
	// errTimeLimit stops the search when the time limit expires inside a relaxation.
	errTimeLimit = errors.New("time limit reached")
	// errNumerical marks a relaxation simplex could not solve at any tolerance.
	errNumerical = errors.New("numerical failure")
)

// Options tune the branch-and-bound search.
type Options struct {
	// Tolerance is the integrality and pruning tolerance.
	Tolerance float64
	// MaxNodes bounds the number of relaxations solved. Zero means DefaultMaxNodes.
	MaxNodes int
	// TimeLimit stops the search early when positive. It also abandons a
	// relaxation that is still running when the limit expires.
	TimeLimit time.Duration
}

// Solver is the in-process ILP backend.
type Solver struct {
	opts Options
}

var _ solver.Solver = &Solver{}

// New creates a native solver, filling unset options with defaults.
func New(opts Options) *Solver {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	return &Solver{opts: opts}
}

// Name implements solver.Solver.
func (s *Solver) Name() string {
	return Name
}

// Solve implements solver.Solver.
func (s *Solver) Solve(ctx context.Context, m *core.Model) (*solver.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger := ctrl.LoggerFrom(ctx).WithValues("solver", Name, "model", m.Name)

	// gonum minimizes, so maximization costs are negated
	sign := 1.0
	if m.Sense == core.Maximize {
		sign = -1
	}
	cost := make([]float64, len(m.Variables))
	for _, t := range m.Objective {
		cost[t.Index] += sign * t.Coef
	}

	search := &branchAndBound{
		solveLP:  gonumSimplex,
		model:    m,
		cost:     cost,
		tol:      s.opts.Tolerance,
		maxNodes: s.opts.MaxNodes,
		logger:   logger,
	}
	if s.opts.TimeLimit > 0 {
		search.deadline = time.Now().Add(s.opts.TimeLimit)
	}

	lower := make([]float64, len(m.Variables))
	upper := make([]float64, len(m.Variables))
	for i, v := range m.Variables {
		lower[i], upper[i] = v.Lower, v.Upper
	}

	result, err := search.run(ctx, lower, upper)
	if err != nil {
		return nil, err
	}
	logger.V(logging.DEBUG).Info("Branch-and-bound finished",
		"status", result.Status, "nodes", result.Nodes, "objective", result.Objective)
	return result, nil
}

type node struct {
	lower, upper []float64
}

// lpSolver solves min c·y subject to A y = b, y >= 0.
type lpSolver func(c []float64, A mat.Matrix, b []float64, tol float64) ([]float64, error)

func gonumSimplex(c []float64, A mat.Matrix, b []float64, tol float64) ([]float64, error) {
	_, x, err := lp.Simplex(c, A, b, tol, nil)
	return x, err
}

type branchAndBound struct {
	solveLP  lpSolver
	model    *core.Model
	cost     []float64
	tol      float64
	maxNodes int
	deadline time.Time
	logger   logr.Logger
}

func (b *branchAndBound) run(ctx context.Context, lower, upper []float64) (*solver.Result, error) {
	stack := []node{{lower: lower, upper: upper}}
	var incumbent []float64
	best := math.Inf(1)
	nodes := 0
	limited := false
	failed := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if nodes >= b.maxNodes || (!b.deadline.IsZero() && time.Now().After(b.deadline)) {
			limited = true
			break
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		x, obj, status, err := b.relax(ctx, n.lower, n.upper)
		switch {
		case errors.Is(err, errTimeLimit):
			limited = true
		case errors.Is(err, errNumerical):
			// the subtree is dropped, so optimality can no longer be proven
			failed++
			b.logger.V(logging.DEBUG).Info("Relaxation failed, dropping node", "node", nodes, "error", err)
			continue
		case err != nil:
			return nil, err
		}
		if limited {
			break
		}
		switch status {
		case solver.StatusInfeasible:
			continue
		case solver.StatusUnbounded:
			// every subproblem is contained in the root relaxation
			return &solver.Result{Status: solver.StatusUnbounded, Nodes: nodes}, nil
		}
		if incumbent != nil && obj >= best-b.tol {
			continue
		}

		j := b.branchVariable(x)
		if j < 0 {
			for i, v := range b.model.Variables {
				if v.Kind == core.Integer {
					x[i] = math.Round(x[i])
				}
			}
			incumbent, best = x, obj
			b.logger.V(logging.TRACE).Info("New incumbent", "node", nodes, "objective", b.model.ObjectiveValue(x))
			continue
		}

		floor := math.Floor(x[j])
		down := node{lower: n.lower, upper: withBound(n.upper, j, floor)}
		up := node{lower: withBound(n.lower, j, floor+1), upper: n.upper}
		// the up branch is explored first
		stack = append(stack, down, up)
	}

	if failed > 0 {
		b.logger.Info("Some relaxations could not be solved", "failed", failed, "nodes", nodes)
		limited = true
	}
	if incumbent == nil {
		status := solver.StatusInfeasible
		if limited {
			status = solver.StatusNotSolved
		}
		return &solver.Result{Status: status, Nodes: nodes}, nil
	}
	status := solver.StatusOptimal
	if limited {
		status = solver.StatusFeasible
	}
	return &solver.Result{
		Status:    status,
		Values:    incumbent,
		Objective: b.model.ObjectiveValue(incumbent),
		Nodes:     nodes,
	}, nil
}

// branchVariable returns the most fractional integer variable, or -1.
func (b *branchAndBound) branchVariable(x []float64) int {
	j, worst := -1, b.tol
	for i, v := range b.model.Variables {
		if v.Kind != core.Integer {
			continue
		}
		frac := x[i] - math.Floor(x[i])
		if d := math.Min(frac, 1-frac); d > worst {
			j, worst = i, d
		}
	}
	return j
}

func withBound(bounds []float64, j int, v float64) []float64 {
	out := append([]float64(nil), bounds...)
	out[j] = v
	return out
}

// relax solves the LP relaxation of the model under the given bounds. The returned
// objective is in minimization form.
func (b *branchAndBound) relax(ctx context.Context, lower, upper []float64) ([]float64, float64, solver.Status, error) {
	form, status := newStandardForm(b.model, b.cost, lower, upper)
	if status != "" {
		return nil, 0, status, nil
	}

	y := make([]float64, len(form.columns))
	if len(form.rows) > 0 {
		sol, err := b.simplex(ctx, form)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, 0, solver.StatusInfeasible, nil
		case errors.Is(err, lp.ErrUnbounded):
			return nil, 0, solver.StatusUnbounded, nil
		case err != nil:
			return nil, 0, "", err
		}
		copy(y, sol[:len(form.columns)])
	}
	if form.unbounded {
		return nil, 0, solver.StatusUnbounded, nil
	}

	x := append([]float64(nil), lower...)
	for k, j := range form.columns {
		x[j] += y[k]
	}
	var obj float64
	for j, c := range b.cost {
		obj += c * x[j]
	}
	return x, obj, "", nil
}

// simplex solves the standard form, retrying with looser tolerances when gonum
// reports a numerical breakdown. It returns as soon as ctx is done or the time
// limit expires; the abandoned solve finishes in the background.
func (b *branchAndBound) simplex(ctx context.Context, form *standardForm) ([]float64, error) {
	type outcome struct {
		sol []float64
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		var last error
		for _, tol := range simplexTolerances {
			A := mat.NewDense(len(form.rows), form.width(), form.matrix())
			sol, err := b.solveLP(form.cost(), A, form.rhs, tol)
			if !isNumerical(err) {
				done <- outcome{sol: sol, err: err}
				return
			}
			last = err
		}
		done <- outcome{err: fmt.Errorf("%w: simplex: %w", errNumerical, last)}
	}()

	var expired <-chan time.Time
	if !b.deadline.IsZero() {
		timer := time.NewTimer(time.Until(b.deadline))
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case out := <-done:
		return out.sol, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-expired:
		return nil, errTimeLimit
	}
}

func isNumerical(err error) bool {
	return errors.Is(err, lp.ErrBland) || errors.Is(err, lp.ErrSingular) || errors.Is(err, lp.ErrLinSolve)
}
