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
	"fmt"
	"math"

	"github.com/llm-d/llm-d-production-planner/internal/config"
)

// RoundingPolicy converts solver values to integer quantities.
type RoundingPolicy int

// enumeration of RoundingPolicy
const (
	// RoundNearest rounds half away from zero.
	RoundNearest RoundingPolicy = iota
	// RoundTruncate drops the fractional part, so 2.9999999 becomes 2.
	RoundTruncate
)

func (p RoundingPolicy) String() string {
	switch p {
	case RoundTruncate:
		return config.RoundingTruncate
	default:
		return config.RoundingNearest
	}
}

// ParseRoundingPolicy maps a configuration value to a RoundingPolicy.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch s {
	case config.RoundingNearest, "":
		return RoundNearest, nil
	case config.RoundingTruncate:
		return RoundTruncate, nil
	default:
		return RoundNearest, fmt.Errorf("unsupported rounding policy: %q", s)
	}
}

// Apply converts v to an integer under the policy.
func (p RoundingPolicy) Apply(v float64) int64 {
	if p == RoundTruncate {
		return int64(v)
	}
	return int64(math.Round(v))
}
