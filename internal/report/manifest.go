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

package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-production-planner/api/v1alpha1"
	"github.com/llm-d/llm-d-production-planner/internal/engines/planner"
	"github.com/llm-d/llm-d-production-planner/pkg/core"
	"github.com/llm-d/llm-d-production-planner/pkg/solver"
)

// DefaultManifestName is used when the renderer has no name.
const DefaultManifestName = "production-plan"

// NewManifest builds a ProductionPlan holding the catalog as its spec and plan as its status.
func NewManifest(name string, catalog *core.Catalog, plan *planner.Plan, planErr error, now time.Time) *v1alpha1.ProductionPlan {
	if name == "" {
		name = DefaultManifestName
	}
	pp := &v1alpha1.ProductionPlan{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupVersion.String(),
			Kind:       v1alpha1.ProductionPlanKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       specFromCatalog(catalog),
		Status: v1alpha1.ProductionPlanStatus{
			SolverStatus: string(plan.Status),
			Solver:       plan.Solver,
			TotalUnits:   plan.TotalUnits,
			LastRunTime:  metav1.NewTime(now),
		},
	}
	for _, a := range plan.SortedAllocations() {
		pp.Status.Allocations = append(pp.Status.Allocations, v1alpha1.ProductAllocation{
			Product:  a.Product,
			Quantity: a.Quantity,
		})
	}
	for _, m := range plan.Materials {
		pp.Status.Materials = append(pp.Status.Materials, v1alpha1.MaterialStatus{
			Name:      m.Name,
			Used:      m.Used,
			Stock:     m.Stock,
			Remaining: m.Remaining,
		})
	}

	condition := metav1.Condition{
		Type:               v1alpha1.TypeOptimizationReady,
		LastTransitionTime: metav1.NewTime(now),
	}
	var cfgErr *core.ConfigurationError
	switch {
	case errors.Is(planErr, planner.ErrUnbounded) || errors.As(planErr, &cfgErr):
		condition.Status = metav1.ConditionFalse
		condition.Reason = v1alpha1.ReasonInvalidConfiguration
		condition.Message = planErr.Error()
	case planErr != nil:
		condition.Status = metav1.ConditionFalse
		condition.Reason = v1alpha1.ReasonOptimizationFailed
		condition.Message = planErr.Error()
	case plan.Status == solver.StatusInfeasible:
		condition.Status = metav1.ConditionFalse
		condition.Reason = v1alpha1.ReasonInfeasible
		condition.Message = "No production plan satisfies the material stock limits"
	case plan.HasSolution():
		condition.Status = metav1.ConditionTrue
		condition.Reason = v1alpha1.ReasonOptimizationSucceeded
		condition.Message = fmt.Sprintf("Planned %d units (%s)", plan.TotalUnits, plan.Status)
	default:
		condition.Status = metav1.ConditionFalse
		condition.Reason = v1alpha1.ReasonOptimizationFailed
		condition.Message = fmt.Sprintf("Solver finished with status %s", plan.Status)
	}
	meta.SetStatusCondition(&pp.Status.Conditions, condition)
	return pp
}

func specFromCatalog(catalog *core.Catalog) v1alpha1.ProductionPlanSpec {
	var spec v1alpha1.ProductionPlanSpec
	if catalog == nil {
		return spec
	}
	for _, m := range catalog.Materials {
		spec.Materials = append(spec.Materials, m.Name)
		if m.Capped() {
			if spec.CappedMaterials == nil {
				spec.CappedMaterials = make(map[string]int64)
			}
			spec.CappedMaterials[m.Name] = *m.Stock
		}
	}
	for _, p := range catalog.Products {
		spec.Products = append(spec.Products, v1alpha1.ProductSpec{
			Name:  p.Name,
			Usage: append([]int64(nil), p.Usage...),
		})
	}
	return spec
}

// WriteManifest writes pp as YAML.
func WriteManifest(w io.Writer, pp *v1alpha1.ProductionPlan) error {
	data, err := yaml.Marshal(pp)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", v1alpha1.ProductionPlanKind, err)
	}
	_, err = w.Write(data)
	return err
}
