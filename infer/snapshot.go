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
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// innerVariable is the algorithm-owned copy of an outer Variable. Its domain
// is its only mutable field: reducing it to a singleton is how evidence is
// encoded.
type innerVariable struct {
	idx         int
	name        string
	outer       Variable
	outerDomain []string // immutable, captured at snapshot time
	domain      []string // mutable; len==1 means evidential
	factorIdx   []int    // indices into base.factors that mention this variable
}

func (v *innerVariable) evidential() bool { return len(v.domain) == 1 }

func (v *innerVariable) String() string { return v.name }

// innerFactor is the algorithm-owned copy of an outer Factor: the same
// evaluation function, bound to inner variable indices instead of the outer
// Variable handles. Go closures carry no mutable object state to leak, so
// "deep copying" the function (spec.md §4.1) is simply holding the Func
// value directly.
type innerFactor struct {
	idx    int
	name   string
	varIdx []int
	eval   func(values ...string) (float64, error)
}

func (f *innerFactor) String() string { return f.name }

// evEntry is one evidence binding, in the algorithm's inner index space.
type evEntry struct {
	idx   int
	value string
}

// base holds the Model Snapshot, the Query/Evidence Controller, and the
// Variable Assignment Enumerator: the three leaf components every algorithm
// in this package is built on (spec.md §2 items 1, 3, 4). It owns the inner
// model exclusively; the outer FactorGraph is borrowed read-only.
type base struct {
	outer    FactorGraph
	vars     []*innerVariable
	factors  []*innerFactor
	outerIdx map[Variable]int

	query    []int // sorted inner indices
	evidence []evEntry

	// logFactors is non-nil once an algorithm that needs log-factors (BE,
	// GBE) has prepared them; SetEvidence keeps their bindings in lockstep.
	logFactors []*logFactor

	logger hclog.Logger
}

// snapshotGraph implements spec.md §4.1: build an inner factor graph whose
// variables and factors are sorted by name and independently mutable.
func snapshotGraph(outer FactorGraph, logger hclog.Logger) (*base, error) {
	sortedVars := append([]Variable(nil), outer.Variables()...)
	sort.Slice(sortedVars, func(i, j int) bool { return sortedVars[i].Name() < sortedVars[j].Name() })

	vars := make([]*innerVariable, len(sortedVars))
	outerIdx := make(map[Variable]int, len(sortedVars))
	nameToIdx := make(map[string]int, len(sortedVars))
	for i, ov := range sortedVars {
		dom := append([]string(nil), ov.Domain()...)
		vars[i] = &innerVariable{
			idx:         i,
			name:        ov.Name(),
			outer:       ov,
			outerDomain: dom,
			domain:      append([]string(nil), dom...),
		}
		outerIdx[ov] = i
		nameToIdx[ov.Name()] = i
	}

	sortedFactors := append([]Factor(nil), outer.Factors()...)
	sort.Slice(sortedFactors, func(i, j int) bool { return sortedFactors[i].Name() < sortedFactors[j].Name() })

	factors := make([]*innerFactor, len(sortedFactors))
	for i, of := range sortedFactors {
		names := of.VarNames()
		varIdx := make([]int, len(names))
		for j, n := range names {
			idx, ok := nameToIdx[n]
			if !ok {
				return nil, fmt.Errorf("infer: factor %q references unknown variable %q", of.Name(), n)
			}
			varIdx[j] = idx
		}
		factors[i] = &innerFactor{idx: i, name: of.Name(), varIdx: varIdx, eval: of.Eval}
		for _, vi := range varIdx {
			vars[vi].factorIdx = append(vars[vi].factorIdx, i)
		}
	}

	return &base{outer: outer, vars: vars, factors: factors, outerIdx: outerIdx, logger: logger}, nil
}

// Variables returns the inner model's variables in snapshot (name) order.
func (b *base) Variables() []*innerVariable { return b.vars }

// SetQuery implements spec.md §4.2 set_query.
func (b *base) SetQuery(vars ...Variable) error {
	if len(vars) == 0 {
		b.query = nil
		return nil
	}
	var errs *multierror.Error
	seen := make(map[int]bool, len(vars))
	idxs := make([]int, 0, len(vars))
	for _, v := range vars {
		idx, ok := b.outerIdx[v]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrUnknownVariable, v.Name()))
			continue
		}
		if seen[idx] {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrDuplicateQueryVariable, b.vars[idx].name))
			continue
		}
		seen[idx] = true
		idxs = append(idxs, idx)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	sort.Slice(idxs, func(i, j int) bool { return b.vars[idxs[i]].name < b.vars[idxs[j]].name })
	b.query = idxs
	return nil
}

// SetEvidence implements spec.md §4.2 set_evidence: previously evidential
// variables are always restored first, so repeated calls never accumulate.
func (b *base) SetEvidence(ev ...Evidence) error {
	for _, e := range b.evidence {
		iv := b.vars[e.idx]
		iv.domain = append([]string(nil), iv.outerDomain...)
		b.unbindLogFactors(e.idx)
	}
	b.evidence = nil
	if len(ev) == 0 {
		return nil
	}

	var errs *multierror.Error
	seen := make(map[int]bool, len(ev))
	entries := make([]evEntry, 0, len(ev))
	for _, e := range ev {
		idx, ok := b.outerIdx[e.Var]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrUnknownVariable, e.Var.Name()))
			continue
		}
		if seen[idx] {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrDuplicateEvidence, b.vars[idx].name))
			continue
		}
		seen[idx] = true
		if !containsString(b.vars[idx].outerDomain, e.Value) {
			errs = multierror.Append(errs, fmt.Errorf("%w: %q not in domain of %s", ErrValueOutOfDomain, e.Value, b.vars[idx].name))
			continue
		}
		entries = append(entries, evEntry{idx: idx, value: e.Value})
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	sort.Slice(entries, func(i, j int) bool { return b.vars[entries[i].idx].name < b.vars[entries[j].idx].name })
	for _, en := range entries {
		b.vars[en.idx].domain = []string{en.value}
		b.bindLogFactors(en.idx, en.value)
	}
	b.evidence = entries
	return nil
}

// CheckQueryAndEvidence implements spec.md §4.2 check_query_and_evidence.
func (b *base) CheckQueryAndEvidence() error {
	evSet := make(map[int]bool, len(b.evidence))
	for _, e := range b.evidence {
		evSet[e.idx] = true
	}
	for _, q := range b.query {
		if evSet[q] {
			return fmt.Errorf("%w: %s", ErrQueryEvidenceOverlap, b.vars[q].name)
		}
	}
	return nil
}

// evidenceKey returns the canonical cache key for the current evidence: the
// sorted tuple of (inner variable index, bound value) pairs, or "" when
// there is no evidence. Evidence is always kept sorted by name, so this is
// already canonical.
func (b *base) evidenceKey() string {
	if len(b.evidence) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, e := range b.evidence {
		fmt.Fprintf(&sb, "%d=%s;", e.idx, e.value)
	}
	return sb.String()
}

// evaluateAssignments implements spec.md §4.3: the Cartesian product of the
// domains of vars, named by inner index, in the given order.
func evaluateAssignments(vars []*innerVariable, idxs []int) [][]string {
	if len(idxs) == 0 {
		return [][]string{{}}
	}
	total := 1
	for _, i := range idxs {
		total *= len(vars[i].domain)
	}
	out := make([][]string, 0, total)
	cur := make([]string, len(idxs))
	var rec func(pos int)
	rec = func(pos int) {
		if pos == len(idxs) {
			tuple := append([]string(nil), cur...)
			out = append(out, tuple)
			return
		}
		for _, val := range vars[idxs[pos]].domain {
			cur[pos] = val
			rec(pos + 1)
		}
	}
	rec(0)
	return out
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
