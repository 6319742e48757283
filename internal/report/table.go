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
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
)

// WriteTable writes the allocations as a table sorted by descending quantity,
// preceded by the solver status.
func WriteTable(w io.Writer, plan *planner.Plan, colored bool) error {
	status := statusColor(plan.Status, colored)
	if _, err := fmt.Fprintf(w, "Optimization Status: %s\n", status.Sprint(string(plan.Status))); err != nil {
		return err
	}
	if !plan.HasSolution() {
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Product", "Units to Produce").
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		})
	if colored {
		t = t.BorderStyle(borderStyle)
	}
	for _, a := range plan.SortedAllocations() {
		t = t.Row(a.Product, strconv.FormatInt(a.Quantity, 10))
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total Units Produced: %d\n", plan.TotalUnits)
	return err
}
