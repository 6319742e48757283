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

// Package cli implements the planner command line.
package cli

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-production-planner/internal/config"
	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
	"github.com/llm-d/llm-d-production-planner/internal/logging"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

// Exit codes of the planner binary.
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidConfiguration
	ExitSolverUnavailable
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"solver":       config.KeySolverBackend,
	"cbc-path":     config.KeySolverCBCPath,
	"time-limit":   config.KeySolverTimeLimit,
	"max-nodes":    config.KeySolverMaxNodes,
	"tolerance":    config.KeySolverTolerance,
	"rounding":     config.KeyRounding,
	"catalog":      config.KeyCatalog,
	"output":       config.KeyOutput,
	"verbose":      config.KeyVerbosity,
	"metrics-file": config.KeyMetricsFile,
}

// rootOptions is shared by all subcommands.
type rootOptions struct {
	configFile string
	cfg        *config.PlannerConfig
	logger     logr.Logger
}

// NewRootCommand builds the planner command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Plan integer production quantities under material stock limits",
		Long: `planner computes how many units of each product to make so that the total
number of units is maximal while no capped material is used beyond its stock.

The catalog is read from a YAML file (a bare catalog or a ProductionPlan manifest);
without one the built-in catalog of ten products over six materials is planned.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.complete(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "config file (YAML)")
	pf.StringP("catalog", "c", "", "catalog or ProductionPlan file (default: built-in catalog)")
	pf.CountP("verbose", "v", "increase log verbosity (-v debug, -vv trace)")

	cmd.AddCommand(
		newSolveCommand(o),
		newValidateCommand(o),
		newCatalogCommand(),
	)
	return cmd
}

// complete loads the configuration and sets up logging before a subcommand runs.
func (o *rootOptions) complete(cmd *cobra.Command) error {
	v, err := config.NewViper(o.configFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logging.Setup(logging.Options{
		Verbosity:   cfg.Verbosity,
		Development: true,
		Writer:      cmd.ErrOrStderr(),
	})
	return nil
}

// newContext returns the command context carrying the configured logger.
func (o *rootOptions) newContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctrl.LoggerInto(ctx, o.logger)
}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	var cfgErr *core.ConfigurationError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &cfgErr), errors.Is(err, planner.ErrUnbounded):
		return ExitInvalidConfiguration
	case errors.Is(err, solver.ErrSolverUnavailable):
		return ExitSolverUnavailable
	default:
		return ExitFailure
	}
}
