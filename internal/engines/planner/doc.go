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

// Package planner turns a production catalog into an integer program, solves it
// with a pluggable backend and reads the result back into a Plan.
//
// Architecture:
//
// The planner follows a pipeline pattern:
//
//	Catalog → BuildModel → solver.Solver → extract → Plan
//	(config)   (builder)   (native | cbc)  (rounding)
//
// Example usage:
//
//	s, err := planner.NewSolver(cfg.Solver)
//	if err != nil {
//	    return err
//	}
//	p, err := planner.NewPlanner(s, planner.WithRounding(planner.RoundTruncate))
//	if err != nil {
//	    return err
//	}
//
//	plan, err := p.Plan(ctx, catalog)
//	if err != nil {
//	    log.Error(err, "planning failed")
//	    return err
//	}
//	log.Info("plan ready", "status", plan.Status, "totalUnits", plan.TotalUnits)
//
// Model:
//
//  1. Variables
//     - One non-negative integer Produce_<product> per product, in catalog order
//
//  2. Objective
//     - Maximize Total_Units_Produced, the sum of all variables
//
//  3. Constraints
//     - One <material>_Limit row per capped material: sum of usage times quantity <= stock
//     - Uncapped materials do not appear in the model
//
// Error Handling:
//
//   - Invalid catalogs → *core.ConfigurationError, before any model is built
//   - Infeasible models → Plan with StatusInfeasible and no error
//   - Unbounded models → Plan with StatusUnbounded and ErrUnbounded
//   - Searches stopped without a solution → ErrNotSolved
//   - Values that break the model → ErrInvalidSolution, never a Plan
//   - Backend failures such as solver.ErrSolverUnavailable → returned as is, never retried
package planner
