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

import "sort"

// Variable is a categorical random variable with an ordered, duplicate-free
// domain of string values. A Variable is identity-distinguishable: two
// Variables with the same name are still distinct Go objects, and identity
// for the purposes of the infer package is always pointer identity.
type Variable struct {
	node
	domain []string
	// factors back-references every Factor that mentions this variable, in
	// the order the factors were linked.
	factors []*Factor
}

// NewVariable builds a Variable with the given name and domain values. The
// domain is deduplicated and sorted so that two variables built from the
// same value set always iterate identically.
func NewVariable(name string, domain ...string) *Variable {
	seen := make(map[string]bool, len(domain))
	uniq := make([]string, 0, len(domain))
	for _, v := range domain {
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}
	sort.Strings(uniq)
	return &Variable{node: node{name: name}, domain: uniq}
}

// Domain returns the variable's current domain. Callers must not mutate the
// returned slice.
func (v *Variable) Domain() []string {
	return v.domain
}

// Factors returns the factors that reference this variable.
func (v *Variable) Factors() []*Factor {
	return v.factors
}

func (v *Variable) linkFactor(f *Factor) {
	v.factors = append(v.factors, f)
}
