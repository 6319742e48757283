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
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	pkgconfig "github.com/llm-d/llm-d-production-planner/pkg/config"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

const bareCatalog = `
materials: [Material 1, Material 2]
products:
  - name: A
    usage: [3, 2]
  - name: B
    usage: [2, 1]
cappedMaterials:
  Material 1: 6
  Material 2: 2
`

const planManifest = `
apiVersion: planning.llm-d.ai/v1alpha1
kind: ProductionPlan
metadata:
  name: small
spec:
  materials: [Material 1, Material 2]
  products:
    - name: A
      usage: [3, 2]
    - name: B
      usage: [2, 1]
  cappedMaterials:
    Material 1: 6
    Material 2: 2
`

func writeCatalog(content string) string {
	path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}

var _ = Describe("Catalog loading", func() {
	expected := &pkgconfig.CatalogSpec{
		Materials: []string{"Material 1", "Material 2"},
		Products: []pkgconfig.ProductSpec{
			{Name: "A", Usage: []int64{3, 2}},
			{Name: "B", Usage: []int64{2, 1}},
		},
		CappedMaterials: map[string]int64{"Material 1": 6, "Material 2": 2},
	}

	Describe("ParseCatalogSpec", func() {
		It("should parse a bare catalog", func() {
			spec, err := ParseCatalogSpec([]byte(bareCatalog))
			Expect(err).NotTo(HaveOccurred())
			Expect(spec).To(Equal(expected))
		})

		It("should parse a ProductionPlan manifest", func() {
			spec, err := ParseCatalogSpec([]byte(planManifest))
			Expect(err).NotTo(HaveOccurred())
			Expect(spec).To(Equal(expected))
		})

		It("should reject manifests of other kinds", func() {
			_, err := ParseCatalogSpec([]byte("apiVersion: v1\nkind: ConfigMap\n"))
			Expect(err).To(MatchError(ContainSubstring(`unsupported manifest kind "ConfigMap"`)))
		})

		It("should reject unknown fields in a bare catalog", func() {
			_, err := ParseCatalogSpec([]byte("products: []\nstock: 5\n"))
			Expect(err).To(MatchError(ContainSubstring("failed to parse catalog")))
		})

		It("should reject unknown fields in a manifest", func() {
			_, err := ParseCatalogSpec([]byte(planManifest + "  priority: high\n"))
			Expect(err).To(MatchError(ContainSubstring("failed to parse ProductionPlan manifest")))
		})

		It("should reject empty documents", func() {
			_, err := ParseCatalogSpec([]byte("  \n"))
			Expect(err).To(MatchError(ErrEmptyCatalog))
		})
	})

	Describe("LoadCatalog", func() {
		It("should return the built-in catalog for an empty path", func() {
			catalog, err := LoadCatalog("")
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog.Products).To(HaveLen(10))
			Expect(catalog.Materials).To(HaveLen(6))
			Expect(catalog.Materials[2].Stock).To(Equal(ptr.To[int64](50)))
			Expect(catalog.Materials[4].Stock).To(Equal(ptr.To[int64](40)))
			Expect(catalog.CappedMaterials()).To(Equal([]int{2, 4}))
		})

		It("should load a catalog file", func() {
			catalog, err := LoadCatalog(writeCatalog(bareCatalog))
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog.Products).To(HaveLen(2))
			Expect(catalog.Materials[0].Stock).To(Equal(ptr.To[int64](6)))
		})

		It("should generate material names when none are listed", func() {
			catalog, err := LoadCatalog(writeCatalog(`
products:
  - name: A
    usage: [1, 0, 2]
cappedMaterials:
  Material 3: 4
`))
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog.Materials).To(HaveLen(3))
			Expect(catalog.Materials[2].Name).To(Equal("Material 3"))
			Expect(catalog.CappedMaterials()).To(Equal([]int{2}))
		})

		It("should report invalid catalogs as configuration errors", func() {
			_, err := LoadCatalog(writeCatalog(`
materials: [Material 1]
products:
  - name: A
    usage: [-1]
cappedMaterials:
  Material 9: 4
`))
			var cfgErr *core.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Errors).To(HaveLen(2))
			Expect(err.Error()).To(ContainSubstring("cappedMaterials[Material 9]"))
			Expect(err.Error()).To(ContainSubstring("products[0].usage[0]"))
		})

		It("should fail for a missing file", func() {
			_, err := LoadCatalog(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("failed to read catalog")))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})
	})
})
