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

// Package cbc runs the COIN-OR CBC executable as an ILP backend.
//
// Models are written to a temporary LP file, CBC is invoked with branch-and-cut
// and asked to print every column, and the solution file is read back.
package cbc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-production-planner/internal/logging"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

const (
	// Name is the backend name reported in results and metrics.
	Name = "cbc"

	// DefaultPath is looked up in PATH when Options.Path is empty.
	DefaultPath = "cbc"

	maxOutputInError = 2048
)

// Options configure the CBC backend.
type Options struct {
	// Path to the cbc executable, or a name looked up in PATH.
	Path string
	// TimeLimit is passed to CBC as "sec" when positive.
	TimeLimit time.Duration
	// WorkDir is where temporary model files are created. Empty means os.TempDir().
	WorkDir string
}

// Solver is the CBC backend.
type Solver struct {
	opts Options
}

var _ solver.Solver = &Solver{}

// New creates a CBC solver.
func New(opts Options) *Solver {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	return &Solver{opts: opts}
}

// Name implements solver.Solver.
func (s *Solver) Name() string {
	return Name
}

// Available reports whether the executable can be found.
func (s *Solver) Available() error {
	if _, err := exec.LookPath(s.opts.Path); err != nil {
		return fmt.Errorf("%w: cbc executable %q: %v", solver.ErrSolverUnavailable, s.opts.Path, err)
	}
	return nil
}

// Solve implements solver.Solver.
func (s *Solver) Solve(ctx context.Context, m *core.Model) (*solver.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger := ctrl.LoggerFrom(ctx).WithValues("solver", Name, "model", m.Name)

	path, err := exec.LookPath(s.opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: cbc executable %q: %v", solver.ErrSolverUnavailable, s.opts.Path, err)
	}

	dir, err := os.MkdirTemp(s.opts.WorkDir, "planner-cbc-")
	if err != nil {
		return nil, fmt.Errorf("creating cbc work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Error(err, "Failed to remove cbc work directory", "dir", dir)
		}
	}()

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")
	if err := writeLPFile(lpPath, m); err != nil {
		return nil, err
	}

	args := []string{lpPath}
	if s.opts.TimeLimit > 0 {
		secs := int(math.Ceil(s.opts.TimeLimit.Seconds()))
		args = append(args, "sec", strconv.Itoa(secs))
	}
	args = append(args, "branch", "printingOptions", "all", "solution", solPath)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	logger.V(logging.DEBUG).Info("Running cbc", "path", path, "args", args)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("cbc failed: %w: %s", err, truncate(out.Bytes()))
	}
	logger.V(logging.TRACE).Info("cbc output", "output", out.String())

	f, err := os.Open(solPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cbc wrote no solution file: %s", truncate(out.Bytes()))
	}
	if err != nil {
		return nil, fmt.Errorf("opening cbc solution: %w", err)
	}
	defer f.Close()

	result, err := ParseSolution(f, m)
	if err != nil {
		return nil, err
	}
	logger.V(logging.DEBUG).Info("cbc finished", "status", result.Status, "duration", time.Since(start))
	return result, nil
}

func writeLPFile(path string, m *core.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating lp file: %w", err)
	}
	if err := WriteLP(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing lp file: %w", err)
	}
	return f.Close()
}

func truncate(b []byte) string {
	if len(b) > maxOutputInError {
		b = b[len(b)-maxOutputInError:]
	}
	return string(bytes.TrimSpace(b))
}
