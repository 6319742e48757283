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
	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-production-planner/api/v1alpha1"
	pkgconfig "github.com/llm-d/llm-d-production-planner/pkg/config"
)

func newCatalogCommand() *cobra.Command {
	var manifest bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the built-in catalog as a starting point for your own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := pkgconfig.DefaultCatalogSpec()
			var (
				data []byte
				err  error
			)
			if manifest {
				data, err = k8syaml.Marshal(defaultManifest(spec))
			} else {
				data, err = yaml.Marshal(spec)
			}
			if err != nil {
				return fmt.Errorf("failed to marshal catalog: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&manifest, "manifest", false, "print a ProductionPlan manifest instead of a bare catalog")
	return cmd
}

// defaultManifest wraps spec in a ProductionPlan without status.
func defaultManifest(spec *pkgconfig.CatalogSpec) *manifestWithoutStatus {
	m := &manifestWithoutStatus{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupVersion.String(),
			Kind:       v1alpha1.ProductionPlanKind,
		},
		Metadata: manifestMetadata{Name: "default-catalog"},
		Spec: v1alpha1.ProductionPlanSpec{
			Materials:       spec.Materials,
			CappedMaterials: spec.CappedMaterials,
		},
	}
	for _, p := range spec.Products {
		m.Spec.Products = append(m.Spec.Products, v1alpha1.ProductSpec{Name: p.Name, Usage: p.Usage})
	}
	return m
}

// manifestWithoutStatus keeps empty status and timestamps out of generated input files.
type manifestWithoutStatus struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        manifestMetadata            `json:"metadata"`
	Spec            v1alpha1.ProductionPlanSpec `json:"spec"`
}

type manifestMetadata struct {
	Name string `json:"name"`
}
