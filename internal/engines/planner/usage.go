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
	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

// MaterialUsage is the stock consumption of one capped material under a plan.
type MaterialUsage struct {
	Name      string `json:"name"`
	Used      int64  `json:"used"`
	Stock     int64  `json:"stock"`
	Remaining int64  `json:"remaining"`
}

// GetMaterialUsage calculates how much of each capped material the given quantities
// consume. quantities is aligned with catalog.Products; uncapped materials are skipped.
func GetMaterialUsage(catalog *core.Catalog, quantities []int64) []MaterialUsage {
	var usage []MaterialUsage
	for mi, m := range catalog.Materials {
		if !m.Capped() {
			continue
		}
		var used int64
		for pi, p := range catalog.Products {
			if pi >= len(quantities) {
				break
			}
			used += p.Usage[mi] * quantities[pi]
		}
		usage = append(usage, MaterialUsage{
			Name:      m.Name,
			Used:      used,
			Stock:     *m.Stock,
			Remaining: *m.Stock - used,
		})
	}
	return usage
}
