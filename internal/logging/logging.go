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

// Package logging configures the logr logger shared by the planner packages.
package logging

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels for logger.V(n).
const (
	DEBUG = 1
	TRACE = 2
)

// Options controls logger construction.
type Options struct {
	// Verbosity enables V(n) messages up to n.
	Verbosity int
	// Development switches to human-readable console encoding.
	Development bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// NewLogger builds a zap-backed logr.Logger.
func NewLogger(opts Options) logr.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return zap.New(
		zap.UseDevMode(opts.Development),
		zap.WriteTo(w),
		zap.Level(zapcore.Level(-opts.Verbosity)),
	)
}

// Setup installs the logger as the controller-runtime global logger and returns it.
func Setup(opts Options) logr.Logger {
	logger := NewLogger(opts)
	ctrl.SetLogger(logger)
	return logger
}

// NewTestLogger installs a verbose development logger for test suites.
func NewTestLogger() logr.Logger {
	return Setup(Options{Verbosity: TRACE, Development: true})
}
