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

// Package infer implements exact probabilistic inference over discrete
// factor graphs: Belief Propagation on trees, Bucket Elimination for loopy
// graphs and joint queries, and a Greedy Ordering heuristic that feeds BE.
// The package borrows the outer model read-only (see Variable, Factor,
// FactorGraph below) and works entirely against an isolated inner copy; see
// snapshot.go.
package infer

import "github.com/ax-va/bayesnet/model"

// Variable is the outer-model view the core consumes: a name and an ordered,
// duplicate-free categorical domain. *model.Variable satisfies this
// directly.
type Variable interface {
	Name() string
	Domain() []string
}

// Factor is the outer-model view the core consumes: a name, the ordered
// names of its variables (argument order), and a strictly positive
// evaluation function. *model.Factor satisfies this directly.
type Factor interface {
	Name() string
	VarNames() []string
	Eval(values ...string) (float64, error)
}

// FactorGraph is the outer model the core borrows read-only and snapshots
// into an inner working copy.
type FactorGraph interface {
	Variables() []Variable
	Factors() []Factor
}

// graphAdapter adapts a *model.FactorGraph (or any comparable concrete type
// with the right shape) to FactorGraph. A small adapter is unavoidable here:
// Go does not allow a concrete []*model.Variable to satisfy []Variable by
// itself, so the boundary crossing happens once, at the top, rather than
// forcing model to import infer.
type graphAdapter struct {
	vars    []Variable
	factors []Factor
}

func (a graphAdapter) Variables() []Variable { return a.vars }
func (a graphAdapter) Factors() []Factor     { return a.factors }

// Wrap adapts a *model.FactorGraph to the FactorGraph interface the core
// algorithms consume.
func Wrap(g *model.FactorGraph) FactorGraph {
	vs := g.Variables()
	vars := make([]Variable, len(vs))
	for i, v := range vs {
		vars[i] = v
	}
	fs := g.Factors()
	factors := make([]Factor, len(fs))
	for i, f := range fs {
		factors[i] = f
	}
	return graphAdapter{vars: vars, factors: factors}
}

// Evidence is one (variable, value) pair as supplied by a caller to
// SetEvidence. The variable is identified by the outer Variable handle.
type Evidence struct {
	Var   Variable
	Value string
}

// Distribution maps a tuple of query-variable values, in query order, to a
// probability. It sums to 1 across the Cartesian product of the query
// variables' domains.
type Distribution map[string]float64

// key renders a value tuple into the map key used internally by
// Distribution; it is a package-level helper so that pd-style lookups
// elsewhere in the package can share it.
func key(values []string) string {
	// \x1f (unit separator) cannot appear in a categorical value in any of
	// the example models, and using it avoids ambiguity that a plain comma
	// join could introduce for values containing commas.
	out := make([]byte, 0, 16*len(values))
	for i, v := range values {
		if i > 0 {
			out = append(out, 0x1f)
		}
		out = append(out, v...)
	}
	return string(out)
}
