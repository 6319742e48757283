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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ProductionPlanKind is the kind of ProductionPlan manifests.
const ProductionPlanKind = "ProductionPlan"

// ProductionPlanSpec defines the catalog a production plan is computed for.
type ProductionPlanSpec struct {
	// Materials lists material names in the order used by product usage vectors.
	// When empty, names are generated as "Material 1".."Material N".
	// +kubebuilder:validation:Optional
	Materials []string `json:"materials,omitempty"`

	// Products lists the products that may be produced.
	// +kubebuilder:validation:MinItems=1
	// +kubebuilder:validation:Required
	Products []ProductSpec `json:"products"`

	// CappedMaterials maps a material name to the stock available for it.
	// Materials without an entry are unlimited.
	// +kubebuilder:validation:Optional
	CappedMaterials map[string]int64 `json:"cappedMaterials,omitempty"`
}

// ProductSpec describes one product and its per-unit material usage.
type ProductSpec struct {
	// Name identifies the product.
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Usage holds units of each material consumed per produced unit.
	// +kubebuilder:validation:Required
	Usage []int64 `json:"usage"`
}

// ProductionPlanStatus represents the outcome of the last planning run.
type ProductionPlanStatus struct {
	// SolverStatus is the status reported by the solver
	// (Optimal, Feasible, Infeasible, Unbounded, Not Solved).
	// +optional
	SolverStatus string `json:"solverStatus,omitempty"`

	// Solver names the backend that produced the plan.
	// +optional
	Solver string `json:"solver,omitempty"`

	// TotalUnits is the sum of all allocated quantities.
	// +kubebuilder:validation:Minimum=0
	TotalUnits int64 `json:"totalUnits"`

	// Allocations lists the quantity to produce for each product, sorted by
	// descending quantity.
	// +optional
	Allocations []ProductAllocation `json:"allocations,omitempty"`

	// Materials reports consumption of each capped material.
	// +optional
	Materials []MaterialStatus `json:"materials,omitempty"`

	// LastRunTime is the timestamp of the last planning run.
	// +optional
	LastRunTime metav1.Time `json:"lastRunTime,omitempty"`

	// Conditions represent the latest available observations of the plan's state.
	// +kubebuilder:validation:Optional
	// +patchMergeKey=type
	// +patchStrategy=merge
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty" patchStrategy:"merge" patchMergeKey:"type"`
}

// ProductAllocation is the planned quantity of one product.
type ProductAllocation struct {
	Product string `json:"product"`
	// +kubebuilder:validation:Minimum=0
	Quantity int64 `json:"quantity"`
}

// MaterialStatus reports how much of a capped material the plan consumes.
type MaterialStatus struct {
	Name      string `json:"name"`
	Used      int64  `json:"used"`
	Stock     int64  `json:"stock"`
	Remaining int64  `json:"remaining"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=pp
// +kubebuilder:printcolumn:name="Status",type=string,JSONPath=".status.solverStatus"
// +kubebuilder:printcolumn:name="TotalUnits",type=integer,JSONPath=".status.totalUnits"
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=".metadata.creationTimestamp"

// ProductionPlan is the Schema for the productionplans API.
// It holds a production catalog and the plan computed for it.
type ProductionPlan struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ProductionPlanSpec   `json:"spec,omitempty"`
	Status ProductionPlanStatus `json:"status,omitempty"`
}

// ProductionPlanList contains a list of ProductionPlan resources.
// +kubebuilder:object:root=true
type ProductionPlanList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []ProductionPlan `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ProductionPlan{}, &ProductionPlanList{})
}

// Condition Types for ProductionPlan
const (
	// TypeOptimizationReady indicates whether the last planning run produced a plan
	TypeOptimizationReady = "OptimizationReady"
)

// Condition Reasons for OptimizationReady
const (
	// ReasonOptimizationSucceeded indicates a plan was computed
	ReasonOptimizationSucceeded = "OptimizationSucceeded"
	// ReasonOptimizationFailed indicates the solver could not be run or returned no plan
	ReasonOptimizationFailed = "OptimizationFailed"
	// ReasonInvalidConfiguration indicates the catalog is invalid or leaves production unbounded
	ReasonInvalidConfiguration = "InvalidConfiguration"
	// ReasonInfeasible indicates no production plan satisfies the stock limits
	ReasonInfeasible = "Infeasible"
)
