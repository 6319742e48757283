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

package planner

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-production-planner/internal/config"
	"github.com/llm-d/llm-d-production-planner/internal/metrics"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/cbc"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/native"
)

// expectFeasible checks the properties every solved plan must have.
func expectFeasible(plan *Plan) {
	var total int64
	for _, a := range plan.Allocations {
		Expect(a.Quantity).To(BeNumerically(">=", 0), "product %s", a.Product)
		total += a.Quantity
	}
	Expect(plan.TotalUnits).To(Equal(total))
	for _, m := range plan.Materials {
		Expect(m.Used).To(BeNumerically("<=", m.Stock), "material %s", m.Name)
	}
}

var _ = Describe("Planner", func() {
	var (
		ctx     context.Context
		planner *Planner
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		planner, err = NewPlanner(native.New(native.Options{}))
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with the native backend", func() {
		It("should plan 28 units for the built-in catalog", func() {
			catalog, err := config.LoadCatalog("")
			Expect(err).NotTo(HaveOccurred())

			plan, err := planner.Plan(ctx, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusOptimal))
			Expect(plan.Solver).To(Equal(native.Name))
			Expect(plan.TotalUnits).To(Equal(int64(28)))
			Expect(plan.Allocations).To(HaveLen(10))
			Expect(plan.Materials).To(HaveLen(2))
			expectFeasible(plan)
		})

		It("should find the unique optimum of the two product example", func() {
			plan, err := planner.Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusOptimal))
			Expect(plan.TotalUnits).To(Equal(int64(2)))
			Expect(plan.Allocations).To(Equal([]Allocation{
				{Product: "A", Quantity: 0},
				{Product: "B", Quantity: 2},
			}))
			Expect(plan.Materials).To(Equal([]MaterialUsage{
				{Name: "Material 3", Used: 4, Stock: 6, Remaining: 2},
				{Name: "Material 5", Used: 2, Stock: 2, Remaining: 0},
			}))
		})

		It("should plan nothing when every cap is zero", func() {
			plan, err := planner.Plan(ctx, exampleCatalog(ptr.To[int64](0), ptr.To[int64](0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusOptimal))
			Expect(plan.TotalUnits).To(BeZero())
			expectFeasible(plan)
		})

		It("should report unbounded production without capped materials", func() {
			plan, err := planner.Plan(ctx, exampleCatalog(nil, nil))
			Expect(err).To(MatchError(ErrUnbounded))
			Expect(err.Error()).To(ContainSubstring("[A B]"))
			Expect(plan).NotTo(BeNil())
			Expect(plan.Status).To(Equal(solver.StatusUnbounded))
			Expect(plan.Allocations).To(BeEmpty())
		})

		It("should plan 50 units where branching leaves degenerate bound rows", func() {
			catalog := stockedCatalog([]int64{697, 666}, [][]int64{
				{4, 18}, {14, 13}, {5, 18}, {19, 13},
			})
			plan, err := planner.Plan(ctx, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusOptimal))
			Expect(plan.TotalUnits).To(Equal(int64(50)))
			expectFeasible(plan)
		})

		It("should finish well inside its time limit on a three material catalog", func() {
			limited, err := NewPlanner(native.New(native.Options{TimeLimit: 5 * time.Second}))
			Expect(err).NotTo(HaveOccurred())
			catalog := stockedCatalog([]int64{765, 911, 633}, [][]int64{
				{1, 8, 6}, {6, 10, 19}, {15, 13, 19}, {10, 15, 19}, {18, 1, 8}, {18, 7, 4},
			})

			deadline, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			plan, err := limited.Plan(deadline, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusOptimal))
			Expect(plan.TotalUnits).To(Equal(int64(118)))
			expectFeasible(plan)
		})

		It("should match exhaustive enumeration on random capped catalogs", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 60; i++ {
				catalog := randomCatalog(rng)
				want := maxUnits(catalog)

				plan, err := planner.Plan(ctx, catalog)
				Expect(err).NotTo(HaveOccurred(), "catalog %d: %+v", i, catalog)
				Expect(plan.Status).To(Equal(solver.StatusOptimal), "catalog %d", i)
				Expect(plan.TotalUnits).To(Equal(want), "catalog %d: %+v", i, catalog)
				Expect(plan.Allocations).To(HaveLen(len(catalog.Products)))
				expectFeasible(plan)
			}
		})

		It("should reject invalid catalogs before solving", func() {
			catalog := cappedExampleCatalog()
			catalog.Products[1].Usage = []int64{1}

			_, err := planner.Plan(ctx, catalog)
			var cfgErr *core.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
		})
	})

	Context("with a fake backend", func() {
		var fake *fakeSolver

		BeforeEach(func() {
			fake = &fakeSolver{}
		})

		newPlanner := func(opts ...Option) *Planner {
			p, err := NewPlanner(fake, opts...)
			Expect(err).NotTo(HaveOccurred())
			return p
		}

		It("should return infeasible plans without an error", func() {
			fake.result = &solver.Result{Status: solver.StatusInfeasible}
			plan, err := newPlanner().Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusInfeasible))
			Expect(plan.HasSolution()).To(BeFalse())
			Expect(plan.Allocations).To(BeEmpty())
		})

		It("should wrap ErrNotSolved when the backend gives up", func() {
			fake.result = &solver.Result{Status: solver.StatusNotSolved}
			plan, err := newPlanner().Plan(ctx, cappedExampleCatalog())
			Expect(err).To(MatchError(ErrNotSolved))
			Expect(plan.Status).To(Equal(solver.StatusNotSolved))
		})

		It("should accept feasible plans from limited searches", func() {
			fake.result = &solver.Result{Status: solver.StatusFeasible, Values: []float64{1, 0}}
			plan, err := newPlanner().Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Status).To(Equal(solver.StatusFeasible))
			Expect(plan.TotalUnits).To(Equal(int64(1)))
		})

		It("should return backend failures without retrying", func() {
			fake.err = solver.ErrSolverUnavailable
			_, err := newPlanner().Plan(ctx, cappedExampleCatalog())
			Expect(err).To(MatchError(solver.ErrSolverUnavailable))
			Expect(fake.calls).To(Equal(1))
		})

		DescribeTable("should reject invalid values",
			func(values []float64, want string) {
				fake.result = &solver.Result{Status: solver.StatusOptimal, Values: values}
				plan, err := newPlanner().Plan(ctx, cappedExampleCatalog())
				Expect(err).To(MatchError(ErrInvalidSolution))
				Expect(err.Error()).To(ContainSubstring(want))
				Expect(plan).To(BeNil())
			},
			Entry("missing values", []float64{1}, "got 1 values for 2 variables"),
			Entry("negative quantity", []float64{-1, 0}, "negative quantity"),
			Entry("stock exceeded", []float64{0, 3}, "Material5_Limit"),
			Entry("not a number", []float64{0, nan()}, "product B"),
		)

		It("should round to nearest by default", func() {
			fake.result = &solver.Result{Status: solver.StatusOptimal, Values: []float64{0, 1.9999999}}
			plan, err := newPlanner().Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Quantities()).To(Equal(map[string]int64{"A": 0, "B": 2}))
		})

		It("should truncate when asked to", func() {
			fake.result = &solver.Result{Status: solver.StatusOptimal, Values: []float64{0, 1.9999999}}
			plan, err := newPlanner(WithRounding(RoundTruncate)).Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Quantities()).To(Equal(map[string]int64{"A": 0, "B": 1}))
			Expect(plan.TotalUnits).To(Equal(int64(1)))
		})

		It("should record solve metrics", func() {
			recorder := metrics.NewRecorder()
			fake.result = &solver.Result{Status: solver.StatusOptimal, Values: []float64{0, 2}}
			_, err := newPlanner(WithRecorder(recorder)).Plan(ctx, cappedExampleCatalog())
			Expect(err).NotTo(HaveOccurred())

			count, err := testutil.GatherAndCount(recorder.Registry(),
				"production_planner_solves_total", "production_planner_planned_units")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))
		})
	})

	Describe("SortedAllocations", func() {
		It("should order by quantity and keep catalog order for ties", func() {
			plan := &Plan{Allocations: []Allocation{
				{Product: "A", Quantity: 1},
				{Product: "B", Quantity: 5},
				{Product: "C", Quantity: 1},
				{Product: "D", Quantity: 0},
				{Product: "E", Quantity: 5},
			}}
			Expect(plan.SortedAllocations()).To(Equal([]Allocation{
				{Product: "B", Quantity: 5},
				{Product: "E", Quantity: 5},
				{Product: "A", Quantity: 1},
				{Product: "C", Quantity: 1},
				{Product: "D", Quantity: 0},
			}))
			Expect(plan.Allocations[0].Product).To(Equal("A"))
		})
	})

	Describe("NewPlanner", func() {
		It("should reject a nil solver", func() {
			_, err := NewPlanner(nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("NewPlannerFromConfig", func() {
		It("should select the backend and rounding policy", func() {
			cbcPath := filepath.Join(GinkgoT().TempDir(), "cbc")
			Expect(os.WriteFile(cbcPath, []byte("#!/bin/sh\n"), 0o755)).To(Succeed())

			cfg := config.Default()
			cfg.Solver.Backend = cbc.Name
			cfg.Solver.CBCPath = cbcPath
			cfg.Solver.TimeLimit = time.Minute
			cfg.Rounding = config.RoundingTruncate

			p, err := NewPlannerFromConfig(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.SolverName()).To(Equal(cbc.Name))
			Expect(p.rounding).To(Equal(RoundTruncate))
			Expect(p.tolerance).To(Equal(cfg.Solver.Tolerance))
		})

		It("should report a missing cbc executable before planning", func() {
			cfg := config.Default()
			cfg.Solver.Backend = cbc.Name
			cfg.Solver.CBCPath = filepath.Join(GinkgoT().TempDir(), "cbc")

			_, err := NewPlannerFromConfig(cfg, nil)
			Expect(err).To(MatchError(solver.ErrSolverUnavailable))
		})

		It("should reject unknown backends", func() {
			cfg := config.Default()
			cfg.Solver.Backend = "glpk"
			_, err := NewPlannerFromConfig(cfg, nil)
			Expect(err).To(MatchError(ContainSubstring("unsupported solver backend")))
		})

		It("should reject a nil config", func() {
			_, err := NewPlannerFromConfig(nil, nil)
			Expect(err).To(HaveOccurred())
		})
	})
})
