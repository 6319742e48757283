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
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

const (
	ModelName     = "Maximize_Production"
	ObjectiveName = "Total_Units_Produced"

	variablePrefix   = "Produce_"
	constraintSuffix = "_Limit"
)

// VariableName is the model variable holding the quantity of a product.
func VariableName(product string) string {
	return core.SanitizeName(variablePrefix + product)
}

// ConstraintName is the model constraint limiting a material. Whitespace is
// dropped from the material name, so "Material 3" is limited by Material3_Limit.
func ConstraintName(material string) string {
	return core.SanitizeName(strings.Join(strings.Fields(material), "") + constraintSuffix)
}

// BuildModel formulates the production problem of a catalog: one non-negative
// integer variable per product, the sum of all variables as the objective to
// maximize and one "<=" constraint per capped material. Variable i belongs to
// catalog.Products[i].
func BuildModel(catalog *core.Catalog) (*core.Model, error) {
	if catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}
	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, &core.ConfigurationError{Errors: errs}
	}

	model := core.NewModel(ModelName, core.Maximize)
	objective := make([]core.Term, 0, len(catalog.Products))
	for _, p := range catalog.Products {
		i := model.AddVariable(core.Variable{
			Name:  VariableName(p.Name),
			Kind:  core.Integer,
			Lower: 0,
			Upper: math.Inf(1),
		})
		objective = append(objective, core.Term{Index: i, Coef: 1})
	}
	model.SetObjective(ObjectiveName, objective)

	for _, mi := range catalog.CappedMaterials() {
		material := catalog.Materials[mi]
		var terms []core.Term
		for pi, p := range catalog.Products {
			if p.Usage[mi] == 0 {
				continue
			}
			terms = append(terms, core.Term{Index: pi, Coef: float64(p.Usage[mi])})
		}
		// kept even without terms so every capped material shows up in the model
		model.AddConstraint(core.Constraint{
			Name:     ConstraintName(material.Name),
			Terms:    terms,
			Relation: core.LessEqual,
			RHS:      float64(*material.Stock),
		})
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	return model, nil
}
