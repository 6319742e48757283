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

// Package report renders production plans for people and for other tools.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/llm-d/llm-d-production-planner/internal/config"
	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

// Renderer writes a plan in one of the configured output formats.
type Renderer struct {
	// Format is one of config.OutputText, OutputTable, OutputJSON, OutputYAML.
	Format string
	// Color enables ANSI colors in the text and table formats.
	Color bool
	// Name is the metadata.name of YAML manifests.
	Name string
	// Now stamps manifests. Defaults to time.Now.
	Now func() time.Time
}

// Render writes plan to w. planErr is the error Plan returned alongside the plan, if any;
// it only affects the conditions of YAML manifests.
func (r *Renderer) Render(w io.Writer, catalog *core.Catalog, plan *planner.Plan, planErr error) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	switch r.Format {
	case config.OutputText, "":
		return WriteText(w, plan, r.Color)
	case config.OutputTable:
		return WriteTable(w, plan, r.Color)
	case config.OutputJSON:
		return WriteJSON(w, plan)
	case config.OutputYAML:
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		return WriteManifest(w, NewManifest(r.Name, catalog, plan, planErr, now()))
	default:
		return fmt.Errorf("unsupported output format: %q", r.Format)
	}
}

// ColorEnabled reports whether w is a terminal that should receive colored output.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// statusColor picks the color of a solver status.
func statusColor(status solver.Status, enabled bool) *color.Color {
	var c *color.Color
	switch status {
	case solver.StatusOptimal:
		c = color.New(color.FgGreen, color.Bold)
	case solver.StatusFeasible:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
