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
	"fmt"
	"io"

	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
)

// WriteText writes the console report: the solver status, one line per product with a
// positive quantity in catalog order, the total, and the consumption of capped materials.
func WriteText(w io.Writer, plan *planner.Plan, colored bool) error {
	status := statusColor(plan.Status, colored)
	if _, err := fmt.Fprintf(w, "Optimization Status: %s\n", status.Sprint(string(plan.Status))); err != nil {
		return err
	}
	if !plan.HasSolution() {
		_, err := fmt.Fprintln(w, "No production plan available.")
		return err
	}

	for _, a := range plan.Allocations {
		if a.Quantity <= 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "Produce %d units of Product %s\n", a.Quantity, a.Product); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Total Units Produced: %d\n", plan.TotalUnits); err != nil {
		return err
	}

	if len(plan.Materials) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nMaterial usage:"); err != nil {
		return err
	}
	for _, m := range plan.Materials {
		if _, err := fmt.Fprintf(w, "  %s: %d of %d used, %d remaining\n", m.Name, m.Used, m.Stock, m.Remaining); err != nil {
			return err
		}
	}
	return nil
}
