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

package config

import "fmt"

// ProductSpec describes one product and the units of each material it consumes.
type ProductSpec struct {
	// Name identifies the product (e.g. "A").
	Name string `yaml:"name" json:"name"`

	// Usage holds the per-unit consumption of each material, positionally aligned
	// with CatalogSpec.Materials.
	Usage []int64 `yaml:"usage,flow" json:"usage"`
}

// CatalogSpec is the declarative form of a production catalog.
type CatalogSpec struct {
	// Materials lists material names in usage-vector order.
	Materials []string `yaml:"materials,omitempty" json:"materials,omitempty"`

	// Products lists every product that may be produced.
	Products []ProductSpec `yaml:"products" json:"products"`

	// CappedMaterials maps a material name to its available stock.
	// Materials without an entry are unlimited.
	CappedMaterials map[string]int64 `yaml:"cappedMaterials,omitempty" json:"cappedMaterials,omitempty"`
}

// MaterialName returns the generated name of the i-th material (zero based).
func MaterialName(i int) string {
	return fmt.Sprintf("Material %d", i+1)
}

// MaterialNames returns the effective material names of the catalog, generating
// them from the first product's usage vector when none are listed.
func (s *CatalogSpec) MaterialNames() []string {
	if len(s.Materials) > 0 {
		return s.Materials
	}
	if len(s.Products) == 0 {
		return nil
	}
	names := make([]string, len(s.Products[0].Usage))
	for i := range names {
		names[i] = MaterialName(i)
	}
	return names
}

// DefaultCatalogSpec returns the built-in catalog: ten products over six materials,
// of which Material 3 and Material 5 are limited.
func DefaultCatalogSpec() *CatalogSpec {
	return &CatalogSpec{
		Materials: []string{
			MaterialName(0), MaterialName(1), MaterialName(2),
			MaterialName(3), MaterialName(4), MaterialName(5),
		},
		Products: []ProductSpec{
			{Name: "A", Usage: []int64{1, 2, 3, 1, 2, 1}},
			{Name: "B", Usage: []int64{0, 1, 2, 2, 1, 1}},
			{Name: "C", Usage: []int64{2, 1, 1, 3, 3, 0}},
			{Name: "D", Usage: []int64{0, 0, 2, 1, 2, 1}},
			{Name: "E", Usage: []int64{1, 1, 2, 0, 2, 1}},
			{Name: "F", Usage: []int64{1, 2, 1, 0, 3, 0}},
			{Name: "G", Usage: []int64{1, 0, 2, 1, 1, 2}},
			{Name: "H", Usage: []int64{2, 2, 2, 0, 1, 1}},
			{Name: "I", Usage: []int64{0, 1, 3, 1, 2, 2}},
			{Name: "J", Usage: []int64{1, 1, 2, 2, 2, 1}},
		},
		CappedMaterials: map[string]int64{
			"Material 3": 50,
			"Material 5": 40,
		},
	}
}
