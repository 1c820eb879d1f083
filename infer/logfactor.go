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

import "math"

// logFactor is ln∘φ for one inner factor, plus whichever of its variables
// are currently evidential. Bucket Elimination converts every inner factor
// to a logFactor once, at construction (spec.md §4.6), rather than
// recomputing ln(φ) on every bucket pass.
//
// bound tracks evidential variables by inner index rather than baking their
// value into a mutated φ: FreeVars reports the factor's remaining degrees of
// freedom directly, and eval merges the bound values back in, so a factor
// never has to be rebuilt when evidence changes.
type logFactor struct {
	name     string
	varOrder []int
	bound    map[int]string
	raw      func(values ...string) (float64, error)
}

func newLogFactor(f *innerFactor) *logFactor {
	return &logFactor{
		name:     "log_" + f.name,
		varOrder: append([]int(nil), f.varIdx...),
		bound:    make(map[int]string),
		raw: func(values ...string) (float64, error) {
			p, err := f.eval(values...)
			if err != nil {
				return 0, err
			}
			return math.Log(p), nil
		},
	}
}

// Bind fixes idx to value if this factor mentions idx; otherwise it is a
// no-op, since not every factor touches every evidential variable.
func (lf *logFactor) Bind(idx int, value string) {
	if containsInt(lf.varOrder, idx) {
		lf.bound[idx] = value
	}
}

// Unbind releases idx, restoring it to a free variable of this factor.
func (lf *logFactor) Unbind(idx int) {
	delete(lf.bound, idx)
}

// FreeVars returns this factor's non-evidential variables, in the factor's
// original argument order. This is what the bucket's free-variable
// computation and the sum-out iterate over, so bound variables are never
// summed or carried. Bucket placement walks varOrder instead; bound
// variables own no bucket, so they never decide where a factor lands.
func (lf *logFactor) FreeVars() []int {
	free := make([]int, 0, len(lf.varOrder))
	for _, idx := range lf.varOrder {
		if _, ok := lf.bound[idx]; !ok {
			free = append(free, idx)
		}
	}
	return free
}

// eval computes ln φ(...) for one assignment of this factor's free
// variables, given in the same order as FreeVars, merging in the bound
// evidential values at their original argument positions.
func (lf *logFactor) eval(values []string) (float64, error) {
	args := make([]string, len(lf.varOrder))
	fi := 0
	for i, idx := range lf.varOrder {
		if v, ok := lf.bound[idx]; ok {
			args[i] = v
			continue
		}
		args[i] = values[fi]
		fi++
	}
	return lf.raw(args...)
}

func (b *base) bindLogFactors(idx int, value string) {
	for _, lf := range b.logFactors {
		lf.Bind(idx, value)
	}
}

func (b *base) unbindLogFactors(idx int) {
	for _, lf := range b.logFactors {
		lf.Unbind(idx)
	}
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
