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

package cbc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

// ParseSolution reads a CBC solution file written for m.
//
// The first line carries the status, e.g. "Optimal - objective value 28.00000000";
// the following lines are "index name value reducedCost", optionally prefixed
// with "**" for rows or columns CBC considers infeasible.
func ParseSolution(r io.Reader, m *core.Model) (*solver.Result, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading cbc solution: %w", err)
		}
		return nil, fmt.Errorf("cbc solution is empty")
	}
	status := parseStatus(scanner.Text())
	result := &solver.Result{Status: status}
	if !status.HasSolution() {
		return result, nil
	}

	index := make(map[string]int, len(m.Variables))
	for i, v := range m.Variables {
		index[v.Name] = i
	}
	values := make([]float64, len(m.Variables))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		i, ok := index[fields[1]]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value of %s: %w", fields[1], err)
		}
		values[i] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cbc solution: %w", err)
	}
	result.Values = values
	result.Objective = m.ObjectiveValue(values)
	return result, nil
}

func parseStatus(line string) solver.Status {
	lower := strings.ToLower(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(lower, "optimal"):
		return solver.StatusOptimal
	case strings.HasPrefix(lower, "infeasible"), strings.HasPrefix(lower, "integer infeasible"):
		return solver.StatusInfeasible
	case strings.HasPrefix(lower, "unbounded"):
		return solver.StatusUnbounded
	case strings.HasPrefix(lower, "stopped"):
		if strings.Contains(lower, "no integer solution") || !strings.Contains(lower, "objective value") {
			return solver.StatusNotSolved
		}
		return solver.StatusFeasible
	default:
		return solver.StatusNotSolved
	}
}
