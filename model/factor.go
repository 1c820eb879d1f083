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
	"strings"
)

// Func is a strictly positive, pure total function over the joint domain of
// a factor's variables. Arguments are supplied in the same order as
// Factor.Vars.
type Func func(values ...string) (float64, error)

// Factor is a named, unordered-in-principle but order-fixing tuple of
// variables plus a strictly positive function over their joint domain.
type Factor struct {
	node
	vars []*Variable
	fn   Func
}

// NewFactor builds a Factor over vars, in the given order, and links it back
// into each variable's Factors() list. vars must contain no duplicates.
func NewFactor(name string, fn Func, vars ...*Variable) *Factor {
	seen := make(map[*Variable]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			panic(fmt.Sprintf("model: duplicate variable %q in factor %q", v.Name(), name))
		}
		seen[v] = true
	}
	f := &Factor{node: node{name: name}, vars: vars, fn: fn}
	for _, v := range vars {
		v.linkFactor(f)
	}
	return f
}

// Vars returns the factor's variables in argument order.
func (f *Factor) Vars() []*Variable {
	return f.vars
}

// VarNames returns the names of the factor's variables, in argument order.
// This is the shape the infer package's Factor interface consumes, since a
// name-based slice sidesteps Go's lack of covariant interface slices while
// keeping model free of any dependency on infer.
func (f *Factor) VarNames() []string {
	names := make([]string, len(f.vars))
	for i, v := range f.vars {
		names[i] = v.Name()
	}
	return names
}

// Eval calls the factor's function with values supplied in Vars() order.
func (f *Factor) Eval(values ...string) (float64, error) {
	return f.fn(values...)
}

func (f *Factor) String() string {
	names := make([]string, len(f.vars))
	for i, v := range f.vars {
		names[i] = v.Name()
	}
	return f.Name() + "(" + strings.Join(names, ", ") + ")"
}
