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

// Package config defines the declarative input of the production planner.
//
// The types in this package describe a catalog the way users write it: an ordered
// list of material names, products with positional usage vectors, and stock caps
// keyed by material name. They carry yaml and json tags and no behavior beyond
// defaults; conversion into validated domain objects happens in pkg/core.
//
// Catalog layout:
//
//	materials: ["Material 1", "Material 2", "Material 3"]
//	products:
//	  - name: A
//	    usage: [1, 2, 3]
//	  - name: B
//	    usage: [0, 1, 2]
//	cappedMaterials:
//	  Material 3: 50
//
// When materials is omitted, names are generated as "Material 1".."Material N",
// N being the length of the first product's usage vector.
//
// Example usage:
//
//	spec := config.DefaultCatalogSpec()
//	catalog, errs := core.NewCatalogFromSpec(spec)
//	if len(errs) > 0 {
//	    return &core.ConfigurationError{Errors: errs}
//	}
package config
