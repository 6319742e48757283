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

package solver

import (
	"context"
	"errors"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

// ErrSolverUnavailable is returned when a backend cannot be run in this environment.
var ErrSolverUnavailable = errors.New("solver unavailable")

// Status is the outcome of a solve.
type Status string

const (
	StatusNotSolved  Status = "Not Solved"
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
)

// HasSolution reports whether a Result with this status carries variable values.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Result is what a backend reports for a model.
type Result struct {
	Status Status
	// Values has one entry per model variable when Status.HasSolution().
	Values []float64
	// Objective is the objective value of Values in the model's own sense.
	Objective float64
	// Nodes is the number of search nodes explored, when the backend reports it.
	Nodes int
}

// Solver solves integer linear programs.
type Solver interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Solve runs the backend to completion on m.
	Solve(ctx context.Context, m *core.Model) (*Result, error)
}
