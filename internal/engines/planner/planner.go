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

package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-production-planner/internal/logging"
	"github.com/llm-d/llm-d-production-planner/internal/metrics"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

const (
	// DefaultIntegralityTolerance is how far a solver value may be from an integer
	// before it is reported.
	DefaultIntegralityTolerance = 1e-6

	// statusError labels solve metrics of backends that failed outright.
	statusError = "Error"
)

var (
	// ErrUnbounded is returned when some product is not limited by any capped material.
	ErrUnbounded = errors.New("production is unbounded")
	// ErrNotSolved is returned when the backend stopped without a solution.
	ErrNotSolved = errors.New("no solution found")
	// ErrInvalidSolution is returned when backend values break the model.
	ErrInvalidSolution = errors.New("solver returned an invalid solution")
)

// Allocation is the planned quantity of one product.
type Allocation struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// Plan is the outcome of planning a catalog.
type Plan struct {
	Status solver.Status `json:"status"`
	Solver string        `json:"solver"`
	// Allocations follows catalog order and is empty unless Status has a solution.
	Allocations []Allocation    `json:"allocations,omitempty"`
	TotalUnits  int64           `json:"totalUnits"`
	Materials   []MaterialUsage `json:"materials,omitempty"`
	Nodes       int             `json:"nodes,omitempty"`
	Duration    time.Duration   `json:"duration"`
}

// HasSolution reports whether the plan carries quantities.
func (p *Plan) HasSolution() bool {
	return p.Status.HasSolution()
}

// SortedAllocations returns a copy of the allocations ordered by descending quantity,
// keeping catalog order among equal quantities.
func (p *Plan) SortedAllocations() []Allocation {
	sorted := append([]Allocation(nil), p.Allocations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})
	return sorted
}

// Quantities returns the planned quantity per product name.
func (p *Plan) Quantities() map[string]int64 {
	q := make(map[string]int64, len(p.Allocations))
	for _, a := range p.Allocations {
		q[a.Product] = a.Quantity
	}
	return q
}

// Option configures a Planner.
type Option func(*Planner)

// WithRounding sets how solver values become integer quantities.
func WithRounding(policy RoundingPolicy) Option {
	return func(p *Planner) {
		p.rounding = policy
	}
}

// WithTolerance sets the integrality tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(p *Planner) {
		if tol > 0 {
			p.tolerance = tol
		}
	}
}

// WithRecorder records solve metrics.
func WithRecorder(r *metrics.Recorder) Option {
	return func(p *Planner) {
		p.recorder = r
	}
}

// Planner builds and solves production models.
type Planner struct {
	solver    solver.Solver
	rounding  RoundingPolicy
	tolerance float64
	recorder  *metrics.Recorder
}

// NewPlanner creates a Planner on top of a solver backend.
func NewPlanner(s solver.Solver, opts ...Option) (*Planner, error) {
	if s == nil {
		return nil, fmt.Errorf("solver cannot be nil")
	}
	p := &Planner{
		solver:    s,
		rounding:  RoundNearest,
		tolerance: DefaultIntegralityTolerance,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SolverName is the name of the backend in use.
func (p *Planner) SolverName() string {
	return p.solver.Name()
}

// Plan maximizes the total number of units the catalog's stock allows.
//
// Infeasible models yield a plan without allocations and no error. Unbounded models
// yield a plan together with an error wrapping ErrUnbounded, and solves that stop
// without a solution an error wrapping ErrNotSolved. Backend failures are returned as is.
func (p *Planner) Plan(ctx context.Context, catalog *core.Catalog) (*Plan, error) {
	logger := ctrl.LoggerFrom(ctx).WithValues("solver", p.solver.Name())

	model, err := BuildModel(catalog)
	if err != nil {
		return nil, err
	}
	p.recorder.ObserveModel(len(model.Variables), len(model.Constraints))
	logger.V(logging.DEBUG).Info("Built production model",
		"variables", len(model.Variables),
		"constraints", len(model.Constraints))

	start := time.Now()
	result, err := p.solver.Solve(ctx, model)
	elapsed := time.Since(start)
	if err != nil {
		p.recorder.ObserveSolve(p.solver.Name(), statusError, elapsed)
		return nil, fmt.Errorf("solver %s failed: %w", p.solver.Name(), err)
	}
	p.recorder.ObserveSolve(p.solver.Name(), string(result.Status), elapsed)
	logger.V(logging.DEBUG).Info("Solver finished",
		"status", result.Status,
		"nodes", result.Nodes,
		"duration", elapsed)

	plan := &Plan{
		Status:   result.Status,
		Solver:   p.solver.Name(),
		Nodes:    result.Nodes,
		Duration: elapsed,
	}

	switch result.Status {
	case solver.StatusOptimal, solver.StatusFeasible:
		if result.Status == solver.StatusFeasible {
			logger.Info("Search stopped at a limit, plan may not be optimal")
		}
		if err := p.extract(ctx, catalog, model, result, plan); err != nil {
			return nil, err
		}
		p.recorder.SetPlannedUnits(plan.Quantities())
		logger.Info("Production plan ready", "status", plan.Status, "totalUnits", plan.TotalUnits)
		return plan, nil
	case solver.StatusInfeasible:
		logger.Info("Production model is infeasible")
		return plan, nil
	case solver.StatusUnbounded:
		return plan, fmt.Errorf("%w: products %v use no capped material", ErrUnbounded, catalog.UnlimitedProducts())
	default:
		return plan, fmt.Errorf("%w: solver status %q", ErrNotSolved, result.Status)
	}
}

// extract reads the solver values into plan, each exactly once, and checks them
// against the model.
func (p *Planner) extract(ctx context.Context, catalog *core.Catalog, model *core.Model, result *solver.Result, plan *Plan) error {
	logger := ctrl.LoggerFrom(ctx)

	if len(result.Values) != len(model.Variables) {
		return fmt.Errorf("%w: got %d values for %d variables",
			ErrInvalidSolution, len(result.Values), len(model.Variables))
	}

	quantities := make([]int64, len(result.Values))
	x := make([]float64, len(result.Values))
	for i, v := range result.Values {
		name := catalog.Products[i].Name
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: product %s has value %v", ErrInvalidSolution, name, v)
		}
		if math.Abs(v-math.Round(v)) > p.tolerance {
			logger.Info("Solver value is not integral",
				"product", name,
				"value", v,
				"rounding", p.rounding.String())
		}
		q := p.rounding.Apply(v)
		if q < 0 {
			return fmt.Errorf("%w: product %s has negative quantity %d", ErrInvalidSolution, name, q)
		}
		quantities[i] = q
		x[i] = float64(q)
	}

	if violated := model.Violations(x, 0); len(violated) > 0 {
		return fmt.Errorf("%w: quantities violate %v", ErrInvalidSolution, violated)
	}

	plan.Allocations = make([]Allocation, len(quantities))
	for i, q := range quantities {
		plan.Allocations[i] = Allocation{Product: catalog.Products[i].Name, Quantity: q}
		plan.TotalUnits += q
		logger.V(logging.TRACE).Info("Planned product", "product", catalog.Products[i].Name, "quantity", q)
	}
	plan.Materials = GetMaterialUsage(catalog, quantities)
	return nil
}
