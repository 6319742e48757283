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

package report

import (
	"encoding/json"
	"io"

	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
)

// Document is the JSON form of a plan.
type Document struct {
	Status          string                  `json:"status"`
	Solver          string                  `json:"solver"`
	TotalUnits      int64                   `json:"totalUnits"`
	Allocations     []planner.Allocation    `json:"allocations"`
	Materials       []planner.MaterialUsage `json:"materials,omitempty"`
	Nodes           int                     `json:"nodes,omitempty"`
	DurationSeconds float64                 `json:"durationSeconds"`
}

// NewDocument converts a plan, sorting allocations by descending quantity.
func NewDocument(plan *planner.Plan) *Document {
	doc := &Document{
		Status:          string(plan.Status),
		Solver:          plan.Solver,
		TotalUnits:      plan.TotalUnits,
		Allocations:     plan.SortedAllocations(),
		Materials:       plan.Materials,
		Nodes:           plan.Nodes,
		DurationSeconds: plan.Duration.Seconds(),
	}
	if doc.Allocations == nil {
		doc.Allocations = []planner.Allocation{}
	}
	return doc
}

// WriteJSON writes the plan as an indented JSON document.
func WriteJSON(w io.Writer, plan *planner.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(plan))
}
