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
)

func newValidateCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog without solving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := config.LoadCatalog(o.cfg.Catalog)
			if err != nil {
				return err
			}
			model, err := planner.BuildModel(catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog is valid: %d products, %d materials, %d capped\n",
				len(catalog.Products), len(catalog.Materials), len(catalog.CappedMaterials()))
			fmt.Fprintf(out, "Model %s: %d variables, %d constraints\n",
				model.Name, len(model.Variables), len(model.Constraints))
			if unlimited := catalog.UnlimitedProducts(); len(unlimited) > 0 {
				fmt.Fprintf(out, "Warning: products %v use no capped material, production is unbounded\n", unlimited)
			}
			return nil
		},
	}
}
