// Copyright (c) 2024 The bayesnet authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"sort"
)

// FactorGraph is a bipartite container of variables and the factors that
// reference them. It is the outer, caller-owned model: the infer package's
// algorithms never mutate a FactorGraph, they snapshot it into an isolated
// inner copy.
type FactorGraph struct {
	variables []*Variable
	factors   []*Factor
}

// NewFactorGraph collects every distinct variable referenced by factors and
// builds a FactorGraph. Variables and factors are both sorted by name so
// that iteration over a FactorGraph is deterministic.
func NewFactorGraph(factors ...*Factor) *FactorGraph {
	seen := make(map[*Variable]bool)
	var vars []*Variable
	for _, f := range factors {
		for _, v := range f.Vars() {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name() < vars[j].Name() })
	fs := append([]*Factor(nil), factors...)
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name() < fs[j].Name() })
	return &FactorGraph{variables: vars, factors: fs}
}

// Variables returns every variable in the graph, sorted by name.
func (g *FactorGraph) Variables() []*Variable {
	return g.variables
}

// Factors returns every factor in the graph, sorted by name.
func (g *FactorGraph) Factors() []*Factor {
	return g.factors
}

// Variable looks up a variable by name.
func (g *FactorGraph) Variable(name string) (*Variable, error) {
	for _, v := range g.variables {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("model: no variable named %q", name)
}

// Factor looks up a factor by name.
func (g *FactorGraph) Factor(name string) (*Factor, error) {
	for _, f := range g.factors {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("model: no factor named %q", name)
}
