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
	"fmt"

	"github.com/llm-d/llm-d-production-planner/internal/config"
	"github.com/llm-d/llm-d-production-planner/internal/metrics"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/cbc"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/native"
)

// NewSolver is a factory that creates the solver backend selected by the configuration.
// External backends must be runnable, otherwise solver.ErrSolverUnavailable is returned.
func NewSolver(cfg config.SolverConfig) (solver.Solver, error) {
	switch cfg.Backend {
	case native.Name, "":
		return native.New(native.Options{
			Tolerance: cfg.Tolerance,
			MaxNodes:  cfg.MaxNodes,
			TimeLimit: cfg.TimeLimit,
		}), nil
	case cbc.Name:
		s := cbc.New(cbc.Options{
			Path:      cfg.CBCPath,
			TimeLimit: cfg.TimeLimit,
		})
		if err := s.Available(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported solver backend: %q", cfg.Backend)
	}
}

// NewPlannerFromConfig creates a Planner with the backend and rounding policy of cfg.
// recorder may be nil.
func NewPlannerFromConfig(cfg *config.PlannerConfig, recorder *metrics.Recorder) (*Planner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	s, err := NewSolver(cfg.Solver)
	if err != nil {
		return nil, err
	}
	rounding, err := ParseRoundingPolicy(cfg.Rounding)
	if err != nil {
		return nil, err
	}
	return NewPlanner(s,
		WithRounding(rounding),
		WithTolerance(cfg.Solver.Tolerance),
		WithRecorder(recorder),
	)
}
