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

package infer

import (
	"fmt"
	"os"
)

// pdLookup implements the shared pd(...) semantics of spec.md §6 used by BP,
// BE and GBE alike: arity and domain validation against a stored
// Distribution, keyed in query order.
func pdLookup(dist Distribution, vars []*innerVariable, query []int, values []string) (float64, error) {
	if dist == nil {
		return 0, ErrDistributionNotComputed
	}
	if len(values) != len(query) {
		return 0, ErrArityMismatch
	}
	for i, idx := range query {
		if !containsString(vars[idx].domain, values[i]) {
			return 0, fmt.Errorf("%w: %q not in domain of %s", ErrValueOutOfDomain, values[i], vars[idx].name)
		}
	}
	p, ok := dist[key(values)]
	if !ok {
		return 0, ErrValueOutOfDomain
	}
	return p, nil
}

// printPD implements the shared print_pd() semantics of spec.md §6.
func printPD(dist Distribution, vars []*innerVariable, query []int, pd func(values ...string) (float64, error)) error {
	if dist == nil {
		return ErrDistributionNotComputed
	}
	names := make([]string, len(query))
	for i, idx := range query {
		names[i] = vars[idx].name
	}
	for _, tuple := range evaluateAssignments(vars, query) {
		p, err := pd(tuple...)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "P(%s=%v) = %v\n", names, tuple, p)
	}
	return nil
}
