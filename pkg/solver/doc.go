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

// Package solver defines the boundary between model building and ILP solving.
//
// A Solver receives a core.Model and returns a Result carrying a Status and, when
// a solution exists, one value per model variable. Backends live in subpackages:
//
//   - native: in-process branch-and-bound over gonum's simplex LP solver
//   - cbc: the COIN-OR CBC executable, driven through an LP file
//
// Statuses:
//
//   - Optimal: proven best solution
//   - Feasible: best solution found before a time or node limit
//   - Infeasible: no assignment satisfies all constraints
//   - Unbounded: the objective grows without limit
//   - Not Solved: the backend stopped without a solution
//
// Example usage:
//
//	s := native.New(native.Options{TimeLimit: 10 * time.Second})
//	result, err := s.Solve(ctx, model)
//	if err != nil {
//	    // environment or integration failure, e.g. ErrSolverUnavailable
//	    return err
//	}
//	if result.Status.HasSolution() {
//	    for i, v := range model.Variables {
//	        log.Info("solution value", "variable", v.Name, "value", result.Values[i])
//	    }
//	}
//
// Errors returned by Solve are reserved for failures to run the backend at all.
// Infeasible and unbounded models are not errors at this layer.
package solver
