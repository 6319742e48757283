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

package cbc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/llm-d/llm-d-production-planner/pkg/core"
)

// dummyName is a fixed-to-zero variable used where the LP format needs at least
// one term.
const dummyName = "__dummy"

// WriteLP writes m in CPLEX LP format.
func WriteLP(w io.Writer, m *core.Model) error {
	bw := bufio.NewWriter(w)

	needDummy := len(m.Objective) == 0 || len(m.Constraints) == 0
	for _, c := range m.Constraints {
		if len(c.Terms) == 0 {
			needDummy = true
		}
	}

	fmt.Fprintf(bw, "\\* %s *\\\n", m.Name)
	fmt.Fprintln(bw, m.Sense.String())
	objName := m.ObjectiveName
	if objName == "" {
		objName = "OBJ"
	}
	fmt.Fprintf(bw, "%s: %s\n", objName, expression(m, m.Objective))

	fmt.Fprintln(bw, "Subject To")
	for _, c := range m.Constraints {
		fmt.Fprintf(bw, "%s: %s %s %s\n", c.Name, expression(m, c.Terms), c.Relation, formatNumber(c.RHS))
	}
	if len(m.Constraints) == 0 {
		fmt.Fprintf(bw, "_dummy: %s = 0\n", dummyName)
	}

	var bounds []string
	for _, v := range m.Variables {
		switch {
		case math.IsInf(v.Upper, 1) && v.Lower == 0:
			// default LP bounds
		case math.IsInf(v.Upper, 1):
			bounds = append(bounds, fmt.Sprintf("%s >= %s", v.Name, formatNumber(v.Lower)))
		case v.Upper == v.Lower:
			bounds = append(bounds, fmt.Sprintf("%s = %s", v.Name, formatNumber(v.Lower)))
		default:
			bounds = append(bounds, fmt.Sprintf("%s <= %s <= %s", formatNumber(v.Lower), v.Name, formatNumber(v.Upper)))
		}
	}
	if needDummy {
		bounds = append(bounds, dummyName+" = 0")
	}
	if len(bounds) > 0 {
		fmt.Fprintln(bw, "Bounds")
		for _, b := range bounds {
			fmt.Fprintln(bw, b)
		}
	}

	var generals []string
	for _, v := range m.Variables {
		if v.Kind == core.Integer {
			generals = append(generals, v.Name)
		}
	}
	if len(generals) > 0 {
		fmt.Fprintln(bw, "Generals")
		for _, g := range generals {
			fmt.Fprintln(bw, g)
		}
	}
	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

func expression(m *core.Model, terms []core.Term) string {
	var out []byte
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		coef := t.Coef
		switch {
		case len(out) == 0 && coef < 0:
			out = append(out, "- "...)
			coef = -coef
		case len(out) > 0 && coef < 0:
			out = append(out, " - "...)
			coef = -coef
		case len(out) > 0:
			out = append(out, " + "...)
		}
		if coef != 1 {
			out = append(out, formatNumber(coef)...)
			out = append(out, ' ')
		}
		out = append(out, m.Variables[t.Index].Name...)
	}
	if len(out) == 0 {
		return "0 " + dummyName
	}
	return string(out)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
