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
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-production-planner/pkg/config"
)

// Product is a producible item together with its per-unit material consumption.
type Product struct {
	Name string
	// Usage is aligned with Catalog.Materials.
	Usage []int64
}

// Material is a raw material. Stock is nil for materials without a limit.
type Material struct {
	Name  string
	Stock *int64
}

// Capped reports whether the material limits production.
func (m Material) Capped() bool {
	return m.Stock != nil
}

// Catalog is the complete, static input of a production plan.
type Catalog struct {
	Materials []Material
	Products  []Product
}

// ConfigurationError reports a catalog that cannot be turned into a model.
type ConfigurationError struct {
	Errors field.ErrorList
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid catalog: %v", e.Errors.ToAggregate())
}

// NewCatalogFromSpec converts a declarative catalog into a Catalog.
// Caps naming unknown materials are reported; everything else is left to Validate.
func NewCatalogFromSpec(spec *config.CatalogSpec) (*Catalog, field.ErrorList) {
	var errs field.ErrorList
	if spec == nil {
		return nil, append(errs, field.Required(field.NewPath("spec"), "catalog spec is required"))
	}

	names := spec.MaterialNames()
	catalog := &Catalog{
		Materials: make([]Material, len(names)),
		Products:  make([]Product, len(spec.Products)),
	}
	known := make(map[string]int, len(names))
	for i, name := range names {
		catalog.Materials[i] = Material{Name: name}
		known[name] = i
	}

	// sorted for deterministic error ordering
	capNames := make([]string, 0, len(spec.CappedMaterials))
	for name := range spec.CappedMaterials {
		capNames = append(capNames, name)
	}
	sort.Strings(capNames)
	capPath := field.NewPath("cappedMaterials")
	for _, name := range capNames {
		i, ok := known[name]
		if !ok {
			errs = append(errs, field.NotFound(capPath.Key(name), name))
			continue
		}
		catalog.Materials[i].Stock = ptr.To(spec.CappedMaterials[name])
	}

	for i, p := range spec.Products {
		catalog.Products[i] = Product{
			Name:  p.Name,
			Usage: append([]int64(nil), p.Usage...),
		}
	}
	return catalog, errs
}

// Validate checks the catalog for input that has no meaning in a production plan.
func (c *Catalog) Validate() field.ErrorList {
	var errs field.ErrorList

	materialsPath := field.NewPath("materials")
	seenMaterials := make(map[string]bool, len(c.Materials))
	for i, m := range c.Materials {
		p := materialsPath.Index(i)
		switch {
		case m.Name == "":
			errs = append(errs, field.Required(p.Child("name"), "material name must not be empty"))
		case seenMaterials[m.Name]:
			errs = append(errs, field.Duplicate(p.Child("name"), m.Name))
		}
		seenMaterials[m.Name] = true
		if m.Stock != nil && *m.Stock < 0 {
			errs = append(errs, field.Invalid(p.Child("stock"), *m.Stock, "stock must be >= 0"))
		}
	}

	productsPath := field.NewPath("products")
	if len(c.Products) == 0 {
		errs = append(errs, field.Required(productsPath, "at least one product is required"))
	}
	seenProducts := make(map[string]bool, len(c.Products))
	for i, prod := range c.Products {
		p := productsPath.Index(i)
		switch {
		case prod.Name == "":
			errs = append(errs, field.Required(p.Child("name"), "product name must not be empty"))
		case seenProducts[prod.Name]:
			errs = append(errs, field.Duplicate(p.Child("name"), prod.Name))
		}
		seenProducts[prod.Name] = true

		if len(prod.Usage) != len(c.Materials) {
			errs = append(errs, field.Invalid(p.Child("usage"), len(prod.Usage),
				fmt.Sprintf("must have %d entries, one per material", len(c.Materials))))
			continue
		}
		for j, u := range prod.Usage {
			if u < 0 {
				errs = append(errs, field.Invalid(p.Child("usage").Index(j), u, "usage must be >= 0"))
			}
		}
	}
	return errs
}

// CappedMaterials returns the indexes of materials with a stock limit, in catalog order.
func (c *Catalog) CappedMaterials() []int {
	var capped []int
	for i, m := range c.Materials {
		if m.Capped() {
			capped = append(capped, i)
		}
	}
	return capped
}

// UnlimitedProducts returns the names of products that no capped material restricts.
func (c *Catalog) UnlimitedProducts() []string {
	capped := c.CappedMaterials()
	var names []string
	for _, p := range c.Products {
		limited := false
		for _, mi := range capped {
			if mi < len(p.Usage) && p.Usage[mi] > 0 {
				limited = true
				break
			}
		}
		if !limited {
			names = append(names, p.Name)
		}
	}
	return names
}
