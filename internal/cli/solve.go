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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llm-d/llm-d-production-planner/internal/config"
	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
	"github.com/llm-d/llm-d-production-planner/internal/metrics"
	"github.com/llm-d/llm-d-production-planner/internal/report"
)

func newSolveCommand(o *rootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute the production plan of a catalog",
		Long: `Build the integer program of the catalog, solve it and print the plan.

Output formats:
  text   status line, one line per product to produce, total units
  table  products sorted by planned quantity
  json   machine readable plan
  yaml   ProductionPlan manifest with the plan in its status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, o, name)
		},
	}

	defaults := config.Default()
	f := cmd.Flags()
	f.String("solver", defaults.Solver.Backend, "solver backend: native or cbc")
	f.String("cbc-path", defaults.Solver.CBCPath, "cbc executable")
	f.Duration("time-limit", 0, "stop the search after this long (0 = no limit)")
	f.Int("max-nodes", defaults.Solver.MaxNodes, "branch-and-bound node limit of the native solver")
	f.Float64("tolerance", defaults.Solver.Tolerance, "integrality tolerance")
	f.String("rounding", defaults.Rounding, "conversion of solver values to quantities: nearest or truncate")
	f.StringP("output", "o", defaults.Output, "output format: text, table, json, yaml")
	f.String("metrics-file", "", "write solve metrics to this file in the Prometheus text format")
	f.StringVar(&name, "name", report.DefaultManifestName, "metadata.name of yaml output")
	return cmd
}

func runSolve(cmd *cobra.Command, o *rootOptions, name string) error {
	ctx := o.newContext(cmd)
	cfg := o.cfg

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}
	p, err := planner.NewPlannerFromConfig(cfg, recorder)
	if err != nil {
		return err
	}

	catalog, err := config.LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	plan, planErr := p.Plan(ctx, catalog)
	if plan != nil {
		out := cmd.OutOrStdout()
		r := &report.Renderer{
			Format: cfg.Output,
			Color:  report.ColorEnabled(out),
			Name:   name,
		}
		if err := r.Render(out, catalog, plan, planErr); err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			o.logger.Error(err, "Failed to write metrics")
		}
	}
	return planErr
}
