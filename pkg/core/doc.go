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

// Package core provides the data structures shared by the production planner.
//
// This package contains two layers of types:
//
//   - Catalog, Product, Material: the production domain (what can be made and
//     from which limited materials)
//   - Model, Variable, Constraint, Term: a solver-neutral integer linear program
//     built from a catalog and handed to a pkg/solver backend
//
// Example usage:
//
//	// Convert a declarative catalog and validate it
//	catalog, errs := core.NewCatalogFromSpec(config.DefaultCatalogSpec())
//	if len(errs) == 0 {
//	    errs = catalog.Validate()
//	}
//
//	// Build a small model by hand
//	m := core.NewModel("example", core.Maximize)
//	x := m.AddVariable(core.Variable{Name: "x", Kind: core.Integer, Upper: math.Inf(1)})
//	m.SetObjective("z", []core.Term{{Index: x, Coef: 1}})
//	m.AddConstraint(core.Constraint{
//	    Name:     "cap",
//	    Terms:    []core.Term{{Index: x, Coef: 2}},
//	    Relation: core.LessEqual,
//	    RHS:      7,
//	})
//
// Catalogs are validated before any model is built; a Model is validated again by
// every solver backend since models may also be assembled by hand.
package core
