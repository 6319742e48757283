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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	ctrl "sigs.k8s.io/controller-runtime"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-production-planner/api/v1alpha1"
	"github.com/llm-d/llm-d-production-planner/internal/logging"
	pkgconfig "github.com/llm-d/llm-d-production-planner/pkg/config"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

// ErrEmptyCatalog is returned for catalog documents without content.
var ErrEmptyCatalog = errors.New("catalog document is empty")

// typeMeta is enough of a document to tell manifests from bare catalogs.
type typeMeta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// ParseCatalogSpec decodes a catalog document. Documents carrying a kind must be
// ProductionPlan manifests of the planning API group; anything else is read as a
// bare catalog. Unknown fields are rejected in both forms.
func ParseCatalogSpec(data []byte) (*pkgconfig.CatalogSpec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyCatalog
	}

	var meta typeMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if meta.Kind != "" || meta.APIVersion != "" {
		return parseManifest(data, meta)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec pkgconfig.CatalogSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &spec, nil
}

func parseManifest(data []byte, meta typeMeta) (*pkgconfig.CatalogSpec, error) {
	if meta.Kind != v1alpha1.ProductionPlanKind || meta.APIVersion != v1alpha1.GroupVersion.String() {
		return nil, fmt.Errorf("unsupported manifest kind %q with apiVersion %q, expected %s %s",
			meta.Kind, meta.APIVersion, v1alpha1.ProductionPlanKind, v1alpha1.GroupVersion)
	}
	var plan v1alpha1.ProductionPlan
	if err := k8syaml.UnmarshalStrict(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse %s manifest: %w", v1alpha1.ProductionPlanKind, err)
	}
	ctrl.Log.V(logging.DEBUG).Info("Parsed manifest", "kind", meta.Kind, "name", plan.Name)
	return CatalogSpecFromPlan(&plan), nil
}

// CatalogSpecFromPlan extracts the catalog described by a ProductionPlan.
func CatalogSpecFromPlan(plan *v1alpha1.ProductionPlan) *pkgconfig.CatalogSpec {
	spec := &pkgconfig.CatalogSpec{
		Materials: append([]string(nil), plan.Spec.Materials...),
		Products:  make([]pkgconfig.ProductSpec, len(plan.Spec.Products)),
	}
	for i, p := range plan.Spec.Products {
		spec.Products[i] = pkgconfig.ProductSpec{Name: p.Name, Usage: append([]int64(nil), p.Usage...)}
	}
	if plan.Spec.CappedMaterials != nil {
		spec.CappedMaterials = make(map[string]int64, len(plan.Spec.CappedMaterials))
		for k, v := range plan.Spec.CappedMaterials {
			spec.CappedMaterials[k] = v
		}
	}
	return spec
}

// LoadCatalogSpec reads a catalog document from path. An empty path yields the built-in catalog.
func LoadCatalogSpec(path string) (*pkgconfig.CatalogSpec, error) {
	if path == "" {
		ctrl.Log.V(logging.DEBUG).Info("No catalog file given, using the built-in catalog")
		return pkgconfig.DefaultCatalogSpec(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	spec, err := ParseCatalogSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// NewCatalog converts and validates a catalog spec. Field errors are returned as a
// *core.ConfigurationError.
func NewCatalog(spec *pkgconfig.CatalogSpec) (*core.Catalog, error) {
	catalog, errs := core.NewCatalogFromSpec(spec)
	if catalog != nil {
		errs = append(errs, catalog.Validate()...)
	}
	if len(errs) > 0 {
		return nil, &core.ConfigurationError{Errors: errs}
	}
	return catalog, nil
}

// LoadCatalog reads and validates the catalog at path. An empty path yields the built-in catalog.
func LoadCatalog(path string) (*core.Catalog, error) {
	spec, err := LoadCatalogSpec(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(spec)
}
