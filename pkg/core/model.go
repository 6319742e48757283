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

package core

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Sense is the optimization direction of a model.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

// VariableKind restricts the values a variable may take.
type VariableKind int

const (
	Continuous VariableKind = iota
	Integer
)

// Relation is the comparison operator of a constraint.
type Relation int

const (
	LessEqual Relation = iota
	GreaterEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "<="
	}
}

// Variable is a decision variable bounded by Lower <= x <= Upper.
// Lower must be finite; Upper may be math.Inf(1).
type Variable struct {
	Name  string
	Kind  VariableKind
	Lower float64
	Upper float64
}

// Term is a coefficient applied to the variable at Index.
type Term struct {
	Index int
	Coef  float64
}

// Constraint is a linear row: sum(Terms) Relation RHS.
type Constraint struct {
	Name     string
	Terms    []Term
	Relation Relation
	RHS      float64
}

// Activity evaluates the left-hand side of the constraint at x.
func (c Constraint) Activity(x []float64) float64 {
	var sum float64
	for _, t := range c.Terms {
		sum += t.Coef * x[t.Index]
	}
	return sum
}

// Satisfied reports whether x satisfies the constraint within tol.
func (c Constraint) Satisfied(x []float64, tol float64) bool {
	lhs := c.Activity(x)
	switch c.Relation {
	case GreaterEqual:
		return lhs >= c.RHS-tol
	case Equal:
		return math.Abs(lhs-c.RHS) <= tol
	default:
		return lhs <= c.RHS+tol
	}
}

// Model is a mixed integer linear program.
type Model struct {
	Name          string
	Sense         Sense
	ObjectiveName string
	Objective     []Term
	Variables     []Variable
	Constraints   []Constraint
}

// NewModel creates an empty model.
func NewModel(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense}
}

// AddVariable appends a variable and returns its index.
func (m *Model) AddVariable(v Variable) int {
	m.Variables = append(m.Variables, v)
	return len(m.Variables) - 1
}

// AddConstraint appends a constraint.
func (m *Model) AddConstraint(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}

// SetObjective replaces the objective expression.
func (m *Model) SetObjective(name string, terms []Term) {
	m.ObjectiveName = name
	m.Objective = terms
}

// ObjectiveValue evaluates the objective at x.
func (m *Model) ObjectiveValue(x []float64) float64 {
	var sum float64
	for _, t := range m.Objective {
		sum += t.Coef * x[t.Index]
	}
	return sum
}

// Violations returns the names of constraints and variable bounds that x breaks.
func (m *Model) Violations(x []float64, tol float64) []string {
	var violated []string
	for i, v := range m.Variables {
		if x[i] < v.Lower-tol || x[i] > v.Upper+tol {
			violated = append(violated, v.Name)
		}
	}
	for _, c := range m.Constraints {
		if !c.Satisfied(x, tol) {
			violated = append(violated, c.Name)
		}
	}
	return violated
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// SanitizeName maps an arbitrary label to an identifier accepted by Validate.
func SanitizeName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '.' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// Validate checks structural consistency of the model.
func (m *Model) Validate() error {
	var errs []error
	names := make(map[string]bool, len(m.Variables)+len(m.Constraints))
	checkName := func(kind, name string) {
		switch {
		case !identifier.MatchString(name):
			errs = append(errs, fmt.Errorf("%s name %q is not a valid identifier", kind, name))
		case names[name]:
			errs = append(errs, fmt.Errorf("%s name %q is not unique", kind, name))
		}
		names[name] = true
	}
	checkTerms := func(owner string, terms []Term) {
		for _, t := range terms {
			if t.Index < 0 || t.Index >= len(m.Variables) {
				errs = append(errs, fmt.Errorf("%s references unknown variable %d", owner, t.Index))
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				errs = append(errs, fmt.Errorf("%s has non-finite coefficient %v", owner, t.Coef))
			}
		}
	}

	for _, v := range m.Variables {
		checkName("variable", v.Name)
		if math.IsInf(v.Lower, 0) || math.IsNaN(v.Lower) {
			errs = append(errs, fmt.Errorf("variable %q must have a finite lower bound", v.Name))
		}
		if v.Upper < v.Lower {
			errs = append(errs, fmt.Errorf("variable %q has upper bound %v below lower bound %v", v.Name, v.Upper, v.Lower))
		}
	}
	checkTerms("objective", m.Objective)
	for _, c := range m.Constraints {
		checkName("constraint", c.Name)
		checkTerms(fmt.Sprintf("constraint %q", c.Name), c.Terms)
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			errs = append(errs, fmt.Errorf("constraint %q has non-finite right-hand side", c.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid model %q: %w", m.Name, errors.Join(errs...))
	}
	return nil
}
