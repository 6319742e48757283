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

// Package metrics records solve metrics for the planner.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "production_planner"

// Recorder collects solve metrics in its own registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	solveDuration *prometheus.HistogramVec
	solves        *prometheus.CounterVec
	plannedUnits  *prometheus.GaugeVec
	modelSize     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder and registers its collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent building and solving a production plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"backend", "status"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of production plans solved, by backend and solver status.",
		}, []string{"backend", "status"}),
		plannedUnits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planned_units",
			Help:      "Units planned per product in the last solved plan.",
		}, []string{"product"}),
		modelSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_size",
			Help:      "Size of the last solved model.",
		}, []string{"dimension"}),
	}
	r.registry.MustRegister(r.solveDuration, r.solves, r.plannedUnits, r.modelSize)
	return r
}

// Registry exposes the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveSolve records one solve attempt.
func (r *Recorder) ObserveSolve(backend, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.solveDuration.WithLabelValues(backend, status).Observe(elapsed.Seconds())
	r.solves.WithLabelValues(backend, status).Inc()
}

// ObserveModel records the number of variables and constraints of a model.
func (r *Recorder) ObserveModel(variables, constraints int) {
	if r == nil {
		return
	}
	r.modelSize.WithLabelValues("variables").Set(float64(variables))
	r.modelSize.WithLabelValues("constraints").Set(float64(constraints))
}

// SetPlannedUnits replaces the per-product gauge with the quantities of a plan.
func (r *Recorder) SetPlannedUnits(quantities map[string]int64) {
	if r == nil {
		return
	}
	r.plannedUnits.Reset()
	for product, q := range quantities {
		r.plannedUnits.WithLabelValues(product).Set(float64(q))
	}
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
