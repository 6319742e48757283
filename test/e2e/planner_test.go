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

package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

const timeout = time.Minute

// planner starts the binary with args and waits for it to exit.
func planner(args ...string) *gexec.Session {
	cmd := exec.Command(plannerBinary, args...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
	Expect(err).NotTo(HaveOccurred())
	Eventually(session, timeout).Should(gexec.Exit())
	return session
}

func testdata(name string) string {
	path, err := filepath.Abs(filepath.Join("testdata", name))
	Expect(err).NotTo(HaveOccurred())
	return path
}

type planDocument struct {
	Status      string `json:"status"`
	TotalUnits  int64  `json:"totalUnits"`
	Allocations []struct {
		Product  string `json:"product"`
		Quantity int64  `json:"quantity"`
	} `json:"allocations"`
	Materials []struct {
		Name      string `json:"name"`
		Used      int64  `json:"used"`
		Stock     int64  `json:"stock"`
		Remaining int64  `json:"remaining"`
	} `json:"materials"`
}

func solveJSON(args ...string) planDocument {
	session := planner(append([]string{"solve", "--output", "json"}, args...)...)
	Expect(session).To(gexec.Exit(0))
	var doc planDocument
	Expect(json.Unmarshal(session.Out.Contents(), &doc)).To(Succeed())
	return doc
}

// expectConsistent checks the invariants every reported plan must satisfy.
func expectConsistent(doc planDocument) {
	var total int64
	for _, a := range doc.Allocations {
		Expect(a.Quantity).To(BeNumerically(">=", 0))
		total += a.Quantity
	}
	Expect(doc.TotalUnits).To(Equal(total))
	for _, m := range doc.Materials {
		Expect(m.Used).To(BeNumerically("<=", m.Stock), "material %s", m.Name)
		Expect(m.Remaining).To(Equal(m.Stock - m.Used))
	}
}

var _ = Describe("planner solve", func() {
	It("should plan the built-in catalog", func() {
		session := planner("solve")
		Expect(session).To(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("Optimization Status: Optimal"))
		Expect(session.Out).To(gbytes.Say("Total Units Produced: 28"))
	})

	It("should report a consistent optimal plan as JSON", func() {
		doc := solveJSON()
		Expect(doc.Status).To(Equal("Optimal"))
		Expect(doc.TotalUnits).To(Equal(int64(28)))
		Expect(doc.Materials).To(HaveLen(2))
		expectConsistent(doc)
	})

	It("should find the unique optimum of the two product catalog", func() {
		doc := solveJSON("--catalog", testdata("two-products.yaml"))
		Expect(doc.TotalUnits).To(Equal(int64(2)))
		Expect(doc.Allocations[0].Product).To(Equal("B"))
		Expect(doc.Allocations[0].Quantity).To(Equal(int64(2)))
		expectConsistent(doc)
	})

	It("should plan nothing when all stock is zero", func() {
		doc := solveJSON("--catalog", testdata("zero-stock.yaml"))
		Expect(doc.Status).To(Equal("Optimal"))
		Expect(doc.TotalUnits).To(BeZero())
	})

	It("should accept ProductionPlan manifests", func() {
		doc := solveJSON("--catalog", testdata("plan.yaml"))
		Expect(doc.TotalUnits).To(Equal(int64(2)))
	})

	It("should exit with a configuration error for unbounded catalogs", func() {
		session := planner("solve", "--catalog", testdata("unbounded.yaml"))
		Expect(session).To(gexec.Exit(2))
		Expect(session.Out).To(gbytes.Say("Optimization Status: Unbounded"))
		Expect(session.Err).To(gbytes.Say("production is unbounded"))
	})

	It("should honour the time limit and node limit flags", func() {
		doc := solveJSON("--time-limit", "30s", "--max-nodes", "100000")
		Expect(doc.TotalUnits).To(Equal(int64(28)))
	})

	It("should exit with solver unavailable for a missing cbc binary", func() {
		session := planner("solve", "--solver", "cbc", "--cbc-path", "/nonexistent/cbc")
		Expect(session).To(gexec.Exit(3))
		Expect(session.Err).To(gbytes.Say("solver unavailable"))
	})

	Context("with the cbc backend", func() {
		BeforeEach(func() {
			if cbcBinary == "" {
				Skip("CBC_BIN not set")
			}
		})

		It("should agree with the native backend", func() {
			doc := solveJSON("--solver", "cbc", "--cbc-path", cbcBinary)
			Expect(doc.Status).To(Equal("Optimal"))
			Expect(doc.TotalUnits).To(Equal(int64(28)))
			expectConsistent(doc)
		})
	})
})

var _ = Describe("planner validate", func() {
	It("should accept the example catalogs", func() {
		session := planner("validate", "--catalog", testdata("two-products.yaml"))
		Expect(session).To(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("Catalog is valid: 2 products, 6 materials, 2 capped"))
	})

	It("should list every problem of an invalid catalog", func() {
		session := planner("validate", "--catalog", testdata("invalid.yaml"))
		Expect(session).To(gexec.Exit(2))
		Expect(session.Err).To(gbytes.Say("invalid catalog"))
		Expect(string(session.Err.Contents())).To(And(
			ContainSubstring("products[0].usage[1]"),
			ContainSubstring("products[1].name"),
			ContainSubstring("cappedMaterials[paint]"),
		))
	})
})

var _ = Describe("planner catalog", func() {
	It("should print a catalog that solves to the same plan", func() {
		session := planner("catalog")
		Expect(session).To(gexec.Exit(0))

		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		Expect(os.WriteFile(path, session.Out.Contents(), 0o600)).To(Succeed())
		doc := solveJSON("--catalog", path)
		Expect(doc.TotalUnits).To(Equal(int64(28)))
	})
})
