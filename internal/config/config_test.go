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
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
)

func setenv(key, value string) {
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(os.Unsetenv, key)
}

var _ = Describe("PlannerConfig", func() {
	Context("with no overrides", func() {
		It("should load the defaults", func() {
			v, err := NewViper("")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(Default()))
		})
	})

	Context("with a config file", func() {
		It("should read nested solver settings", func() {
			path := filepath.Join(GinkgoT().TempDir(), "planner.yaml")
			Expect(os.WriteFile(path, []byte(`
solver:
  backend: cbc
  cbcPath: /opt/coin/bin/cbc
  timeLimit: 30s
rounding: truncate
output: json
`), 0o600)).To(Succeed())

			v, err := NewViper(path)
			Expect(err).NotTo(HaveOccurred())
			cfg, err := Load(v)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Solver.Backend).To(Equal("cbc"))
			Expect(cfg.Solver.CBCPath).To(Equal("/opt/coin/bin/cbc"))
			Expect(cfg.Solver.TimeLimit).To(Equal(30 * time.Second))
			Expect(cfg.Solver.Tolerance).To(Equal(1e-6))
			Expect(cfg.Rounding).To(Equal(RoundingTruncate))
			Expect(cfg.Output).To(Equal(OutputJSON))
		})

		It("should fail when the file does not exist", func() {
			_, err := NewViper(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("failed to read config file")))
		})
	})

	Context("with environment overrides", func() {
		It("should prefer PLANNER_ variables over defaults", func() {
			setenv("PLANNER_SOLVER_MAXNODES", "25")
			setenv("PLANNER_OUTPUT", "table")

			v, err := NewViper("")
			Expect(err).NotTo(HaveOccurred())
			cfg, err := Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Solver.MaxNodes).To(Equal(25))
			Expect(cfg.Output).To(Equal(OutputTable))
		})
	})

	Context("with bound flags", func() {
		It("should prefer changed flags and skip unknown ones", func() {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.String("solver", "native", "")
			fs.String("rounding", "nearest", "")
			Expect(fs.Parse([]string{"--solver=cbc"})).To(Succeed())

			v, err := NewViper("")
			Expect(err).NotTo(HaveOccurred())
			Expect(BindFlags(v, fs, map[string]string{
				"solver":   KeySolverBackend,
				"rounding": KeyRounding,
				"output":   KeyOutput,
			})).To(Succeed())

			cfg, err := Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Solver.Backend).To(Equal("cbc"))
			Expect(cfg.Rounding).To(Equal(RoundingNearest))
			Expect(cfg.Output).To(Equal(OutputText))
		})
	})

	DescribeTable("Validate",
		func(mutate func(*PlannerConfig), want string) {
			cfg := Default()
			mutate(cfg)
			err := cfg.Validate()
			if want == "" {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("defaults", func(*PlannerConfig) {}, ""),
		Entry("cbc backend", func(c *PlannerConfig) { c.Solver.Backend = "cbc" }, ""),
		Entry("unknown backend", func(c *PlannerConfig) { c.Solver.Backend = "glpk" }, "solver.backend must be one of"),
		Entry("cbc without path", func(c *PlannerConfig) {
			c.Solver.Backend = "cbc"
			c.Solver.CBCPath = ""
		}, "solver.cbcPath must not be empty"),
		Entry("negative time limit", func(c *PlannerConfig) { c.Solver.TimeLimit = -time.Second }, "solver.timeLimit must be >= 0"),
		Entry("negative node limit", func(c *PlannerConfig) { c.Solver.MaxNodes = -1 }, "solver.maxNodes must be >= 0"),
		Entry("zero tolerance", func(c *PlannerConfig) { c.Solver.Tolerance = 0 }, "solver.tolerance must be in"),
		Entry("tolerance of one half", func(c *PlannerConfig) { c.Solver.Tolerance = 0.5 }, "solver.tolerance must be in"),
		Entry("unknown rounding", func(c *PlannerConfig) { c.Rounding = "ceil" }, "rounding must be one of"),
		Entry("unknown output", func(c *PlannerConfig) { c.Output = "xml" }, "output must be one of"),
		Entry("negative verbosity", func(c *PlannerConfig) { c.Verbosity = -1 }, "verbosity must be >= 0"),
	)

	It("should reject invalid values at load time", func() {
		setenv("PLANNER_ROUNDING", "up")
		v, err := NewViper("")
		Expect(err).NotTo(HaveOccurred())
		_, err = Load(v)
		Expect(err).To(MatchError(ContainSubstring("rounding must be one of")))
	})
})
