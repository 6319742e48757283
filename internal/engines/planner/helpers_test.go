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
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

// exampleCatalog has products A and B over six materials, with Material 3 and Material 5 capped.
func exampleCatalog(cap3, cap5 *int64) *core.Catalog {
	return &core.Catalog{
		Materials: []core.Material{
			{Name: "Material 1"},
			{Name: "Material 2"},
			{Name: "Material 3", Stock: cap3},
			{Name: "Material 4"},
			{Name: "Material 5", Stock: cap5},
			{Name: "Material 6"},
		},
		Products: []core.Product{
			{Name: "A", Usage: []int64{0, 0, 3, 0, 2, 0}},
			{Name: "B", Usage: []int64{0, 0, 2, 0, 1, 0}},
		},
	}
}

func cappedExampleCatalog() *core.Catalog {
	return exampleCatalog(ptr.To[int64](6), ptr.To[int64](2))
}

type fakeSolver struct {
	result *solver.Result
	err    error
	calls  int
}

func (f *fakeSolver) Name() string {
	return "fake"
}

func (f *fakeSolver) Solve(_ context.Context, _ *core.Model) (*solver.Result, error) {
	f.calls++
	return f.result, f.err
}

func nan() float64 {
	return math.NaN()
}

// stockedCatalog caps every material; usage[p][m] is product p's use of material m.
func stockedCatalog(stocks []int64, usage [][]int64) *core.Catalog {
	catalog := &core.Catalog{}
	for k, stock := range stocks {
		catalog.Materials = append(catalog.Materials, core.Material{
			Name:  fmt.Sprintf("Material %d", k+1),
			Stock: ptr.To(stock),
		})
	}
	for p, u := range usage {
		catalog.Products = append(catalog.Products, core.Product{Name: fmt.Sprintf("P%d", p), Usage: u})
	}
	return catalog
}

// randomCatalog draws a fully capped catalog whose usages are all positive.
func randomCatalog(rng *rand.Rand) *core.Catalog {
	stocks := make([]int64, 2+rng.Intn(2))
	for k := range stocks {
		stocks[k] = 100 + rng.Int63n(301)
	}
	usage := make([][]int64, 4+rng.Intn(3))
	for p := range usage {
		usage[p] = make([]int64, len(stocks))
		for k := range usage[p] {
			usage[p][k] = 1 + rng.Int63n(20)
		}
	}
	return stockedCatalog(stocks, usage)
}

// maxUnits enumerates integer plans of a fully capped catalog with positive
// usages and returns the largest total.
func maxUnits(catalog *core.Catalog) int64 {
	usage := make([][]int64, len(catalog.Products))
	for p, product := range catalog.Products {
		usage[p] = product.Usage
	}
	slices.SortStableFunc(usage, func(a, b []int64) int {
		var sa, sb int64
		for k := range a {
			sa += a[k]
			sb += b[k]
		}
		return int(sa - sb)
	})
	stocks := make([]int64, len(catalog.Materials))
	for k, m := range catalog.Materials {
		stocks[k] = *m.Stock
	}

	// minUsage[i][k] is the smallest use of material k among products i and later.
	minUsage := make([][]int64, len(usage))
	for i := len(usage) - 1; i >= 0; i-- {
		minUsage[i] = slices.Clone(usage[i])
		if i+1 < len(usage) {
			for k := range minUsage[i] {
				minUsage[i][k] = min(minUsage[i][k], minUsage[i+1][k])
			}
		}
	}
	limit := func(rem, per []int64) int64 {
		l := int64(math.MaxInt64)
		for k := range rem {
			l = min(l, rem[k]/per[k])
		}
		return l
	}

	var best int64
	var search func(i int, rem []int64, total int64)
	search = func(i int, rem []int64, total int64) {
		if i == len(usage)-1 {
			best = max(best, total+limit(rem, usage[i]))
			return
		}
		if total+limit(rem, minUsage[i]) <= best {
			return
		}
		next := make([]int64, len(rem))
		for q := limit(rem, usage[i]); q >= 0; q-- {
			for k := range rem {
				next[k] = rem[k] - q*usage[i][k]
			}
			search(i+1, next, total+q)
		}
	}
	search(0, stocks, 0)
	return best
}
