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

package native

import (
	"math"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

const feasibilityEpsilon = 1e-9

// standardRow is one equality row of A y = b over the structural columns plus an
// optional slack column (+1 for <=, -1 for >=, 0 for =).
type standardRow struct {
	coefs []float64
	slack float64
	rhs   float64
}

// standardForm is a model rewritten as min c·y, A y = b, y >= 0 with y = x - lower.
// Variables that appear in no row are fixed at their lower bound and left out of
// columns.
type standardForm struct {
	// columns maps structural columns to model variable indexes.
	columns []int
	rows    []standardRow
	rhs     []float64
	costs   []float64
	slacks  int
	// unbounded is set when a dropped variable improves the objective without limit.
	unbounded bool
}

// newStandardForm converts m under the given bounds. A non-empty status means the
// node was decided without running simplex.
func newStandardForm(m *core.Model, cost, lower, upper []float64) (*standardForm, solver.Status) {
	n := len(m.Variables)
	for j := 0; j < n; j++ {
		if lower[j] > upper[j] {
			return nil, solver.StatusInfeasible
		}
	}

	rows := make([]standardRow, 0, len(m.Constraints)+n)
	for _, c := range m.Constraints {
		r := standardRow{coefs: make([]float64, n), rhs: c.RHS}
		for _, t := range c.Terms {
			r.coefs[t.Index] += t.Coef
		}
		for j, a := range r.coefs {
			r.rhs -= a * lower[j]
		}
		switch c.Relation {
		case core.LessEqual:
			r.slack = 1
		case core.GreaterEqual:
			r.slack = -1
		}
		rows = append(rows, r)
	}
	for j := 0; j < n; j++ {
		if math.IsInf(upper[j], 1) {
			continue
		}
		r := standardRow{coefs: make([]float64, n), slack: 1, rhs: upper[j] - lower[j]}
		r.coefs[j] = 1
		rows = append(rows, r)
	}

	kept := rows[:0]
	for _, r := range rows {
		if !allZero(r.coefs) {
			kept = append(kept, r)
			continue
		}
		if !emptyRowSatisfied(r) {
			return nil, solver.StatusInfeasible
		}
	}

	form := &standardForm{}
	for j := 0; j < n; j++ {
		used := false
		for _, r := range kept {
			if r.coefs[j] != 0 {
				used = true
				break
			}
		}
		if used {
			form.columns = append(form.columns, j)
			continue
		}
		if cost[j] < 0 {
			form.unbounded = true
		}
	}

	for _, r := range kept {
		row := standardRow{coefs: make([]float64, len(form.columns)), slack: r.slack, rhs: r.rhs}
		for k, j := range form.columns {
			row.coefs[k] = r.coefs[j]
		}
		if row.rhs < 0 {
			for k := range row.coefs {
				row.coefs[k] = -row.coefs[k]
			}
			row.slack, row.rhs = -row.slack, -row.rhs
		}
		if row.slack != 0 {
			form.slacks++
		}
		form.rows = append(form.rows, row)
		form.rhs = append(form.rhs, row.rhs)
	}

	form.costs = make([]float64, form.width())
	for k, j := range form.columns {
		form.costs[k] = cost[j]
	}
	return form, ""
}

func (f *standardForm) width() int {
	return len(f.columns) + f.slacks
}

func (f *standardForm) cost() []float64 {
	return f.costs
}

// matrix returns A in row-major order, slack columns after the structural ones.
func (f *standardForm) matrix() []float64 {
	width := f.width()
	data := make([]float64, len(f.rows)*width)
	slack := len(f.columns)
	for i, r := range f.rows {
		copy(data[i*width:], r.coefs)
		if r.slack != 0 {
			data[i*width+slack] = r.slack
			slack++
		}
	}
	return data
}

func allZero(v []float64) bool {
	for _, a := range v {
		if a != 0 {
			return false
		}
	}
	return true
}

func emptyRowSatisfied(r standardRow) bool {
	switch {
	case r.slack > 0:
		return r.rhs >= -feasibilityEpsilon
	case r.slack < 0:
		return r.rhs <= feasibilityEpsilon
	default:
		return math.Abs(r.rhs) <= feasibilityEpsilon
	}
}
