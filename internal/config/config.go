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
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-production-planner/internal/logging"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/cbc"
	"github.com/llm-d/llm-d-production-planner/pkg/solver/native"
)

const (
	// EnvPrefix is prepended to every environment variable override, e.g. PLANNER_SOLVER_BACKEND.
	EnvPrefix = "PLANNER"

	RoundingNearest  = "nearest"
	RoundingTruncate = "truncate"

	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Configuration keys, as used in config files and with viper.Set.
const (
	KeySolverBackend   = "solver.backend"
	KeySolverCBCPath   = "solver.cbcPath"
	KeySolverTimeLimit = "solver.timeLimit"
	KeySolverMaxNodes  = "solver.maxNodes"
	KeySolverTolerance = "solver.tolerance"
	KeyRounding        = "rounding"
	KeyCatalog         = "catalog"
	KeyOutput          = "output"
	KeyVerbosity       = "verbosity"
	KeyMetricsFile     = "metricsFile"
)

// tolerances at or above one half make every value integral
const maxTolerance = 0.5

var (
	backends      = []string{native.Name, cbc.Name}
	roundingModes = []string{RoundingNearest, RoundingTruncate}
	outputFormats = []string{OutputText, OutputTable, OutputJSON, OutputYAML}
)

// SolverConfig selects and tunes the ILP backend.
type SolverConfig struct {
	// Backend is "native" (in process) or "cbc" (external executable).
	Backend string `mapstructure:"backend" json:"backend"`

	// CBCPath is the cbc executable, looked up in PATH when it has no directory part.
	CBCPath string `mapstructure:"cbcPath" json:"cbcPath,omitempty"`

	// TimeLimit stops the search early when positive.
	TimeLimit time.Duration `mapstructure:"timeLimit" json:"timeLimit,omitempty"`

	// MaxNodes bounds the native branch-and-bound. Zero means the backend default.
	MaxNodes int `mapstructure:"maxNodes" json:"maxNodes,omitempty"`

	// Tolerance is the integrality tolerance applied to solver values.
	Tolerance float64 `mapstructure:"tolerance" json:"tolerance"`
}

// PlannerConfig is the complete runtime configuration of the planner CLI.
type PlannerConfig struct {
	Solver SolverConfig `mapstructure:"solver" json:"solver"`

	// Rounding converts solver values to integer quantities: "nearest" or "truncate".
	Rounding string `mapstructure:"rounding" json:"rounding"`

	// Catalog is the catalog or ProductionPlan file to plan. Empty selects the built-in catalog.
	Catalog string `mapstructure:"catalog" json:"catalog,omitempty"`

	// Output is one of text, table, json, yaml.
	Output string `mapstructure:"output" json:"output"`

	Verbosity int `mapstructure:"verbosity" json:"verbosity,omitempty"`

	// MetricsFile, when set, receives solve metrics in the Prometheus text format.
	MetricsFile string `mapstructure:"metricsFile" json:"metricsFile,omitempty"`
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySolverBackend, native.Name)
	v.SetDefault(KeySolverCBCPath, cbc.DefaultPath)
	v.SetDefault(KeySolverTimeLimit, time.Duration(0))
	v.SetDefault(KeySolverMaxNodes, native.DefaultMaxNodes)
	v.SetDefault(KeySolverTolerance, native.DefaultTolerance)
	v.SetDefault(KeyRounding, RoundingNearest)
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyVerbosity, 0)
	v.SetDefault(KeyMetricsFile, "")
}

// NewViper returns a viper instance with defaults and PLANNER_ environment overrides.
// When configFile is not empty it is read as well; a missing or malformed file is an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		ctrl.Log.V(logging.DEBUG).Info("Using config file", "file", v.ConfigFileUsed())
	}
	return v, nil
}

// BindFlags binds command-line flags to configuration keys. Flags missing from fs are skipped,
// so commands may register only the flags they use.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, flagToKey map[string]string) error {
	for name, key := range flagToKey {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*PlannerConfig, error) {
	var cfg PlannerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctrl.Log.V(logging.DEBUG).Info("Loaded planner configuration",
		"backend", cfg.Solver.Backend,
		"rounding", cfg.Rounding,
		"output", cfg.Output,
		"catalog", cfg.Catalog)
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *PlannerConfig {
	return &PlannerConfig{
		Solver: SolverConfig{
			Backend:   native.Name,
			CBCPath:   cbc.DefaultPath,
			MaxNodes:  native.DefaultMaxNodes,
			Tolerance: native.DefaultTolerance,
		},
		Rounding: RoundingNearest,
		Output:   OutputText,
	}
}

// Validate checks for invalid configuration values.
func (c *PlannerConfig) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if !slices.Contains(roundingModes, c.Rounding) {
		return fmt.Errorf("rounding must be one of %v, got %q", roundingModes, c.Rounding)
	}
	if !slices.Contains(outputFormats, c.Output) {
		return fmt.Errorf("output must be one of %v, got %q", outputFormats, c.Output)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must be >= 0, got %d", c.Verbosity)
	}
	return nil
}

// Validate checks for invalid solver settings.
func (c *SolverConfig) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("solver.backend must be one of %v, got %q", backends, c.Backend)
	}
	if c.Backend == cbc.Name && c.CBCPath == "" {
		return fmt.Errorf("solver.cbcPath must not be empty for the %s backend", cbc.Name)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("solver.timeLimit must be >= 0, got %s", c.TimeLimit)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("solver.maxNodes must be >= 0, got %d", c.MaxNodes)
	}
	if c.Tolerance <= 0 || c.Tolerance >= maxTolerance {
		return fmt.Errorf("solver.tolerance must be in (0, %.1f), got %g", maxTolerance, c.Tolerance)
	}
	return nil
}
