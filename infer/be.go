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
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// bucketState is the per-variable workspace of spec.md §3's Bucket: the
// owning variable and its accumulated input log-factors. Its free variables
// are not stored here; Run computes them with freeVarsOf during the main
// pass.
type bucketState struct {
	owner int
	input []*logFactor
}

// BE is the Bucket Elimination core (spec.md §4.6): exact inference for
// loopy graphs and multi-variable joint queries, driven by a caller-supplied
// elimination order.
type BE struct {
	*base
	opts options

	order    []int
	orderSet bool

	dist Distribution
}

// NewBE snapshots g, converts every inner factor to a log-factor once (the
// one-time construction step spec.md §4.6 requires), and returns a BE
// instance ready for SetEliminationOrder.
func NewBE(g FactorGraph, opts ...Option) (*BE, error) {
	o := newOptions(opts...)
	b, err := snapshotGraph(g, o.logger)
	if err != nil {
		return nil, err
	}
	b.logFactors = make([]*logFactor, len(b.factors))
	for i, f := range b.factors {
		b.logFactors[i] = newLogFactor(f)
	}
	return &BE{base: b, opts: o}, nil
}

// SetEliminationOrder maps each outer variable to its inner counterpart and
// installs it as the elimination order, validated fully (not fail-fast) so
// every bad entry is reported together.
func (be *BE) SetEliminationOrder(vars ...Variable) error {
	var errs *multierror.Error
	seen := make(map[int]bool, len(vars))
	idxs := make([]int, 0, len(vars))
	for _, v := range vars {
		idx, ok := be.outerIdx[v]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrUnknownVariable, v.Name()))
			continue
		}
		if seen[idx] {
			errs = multierror.Append(errs, fmt.Errorf("infer: duplicate elimination-order variable: %s", be.vars[idx].name))
			continue
		}
		seen[idx] = true
		idxs = append(idxs, idx)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	be.order = idxs
	be.orderSet = true
	return nil
}

// setEliminationOrderIdx installs a pre-resolved order; used by GBE, which
// shares this Controller's inner index space with its own GO pass.
func (be *BE) setEliminationOrderIdx(idxs []int) {
	be.order = append([]int(nil), idxs...)
	be.orderSet = true
}

func (be *BE) checkOrderCoverage() error {
	seen := make(map[int]int, len(be.vars))
	for _, q := range be.query {
		seen[q]++
	}
	for _, e := range be.evidence {
		seen[e.idx]++
	}
	for _, o := range be.order {
		seen[o]++
	}
	if len(seen) != len(be.vars) {
		return ErrOrderCoverageInvalid
	}
	for _, c := range seen {
		if c != 1 {
			return ErrOrderCoverageInvalid
		}
	}
	return nil
}

// Run executes one bucket-elimination pass for the current query, evidence,
// and elimination order (spec.md §4.6).
func (be *BE) Run() error {
	be.dist = nil
	if len(be.query) == 0 {
		return ErrQueryNotSet
	}
	if !be.orderSet {
		return ErrEliminationOrderNotSet
	}
	if err := be.CheckQueryAndEvidence(); err != nil {
		return err
	}
	if err := be.checkOrderCoverage(); err != nil {
		return err
	}

	logger := be.logger.With("run", runTag())

	bucketOrder := append(append([]int(nil), be.order...), be.query...)
	buckets := make(map[int]*bucketState, len(bucketOrder))
	position := make(map[int]int, len(bucketOrder))
	for i, idx := range bucketOrder {
		buckets[idx] = &bucketState{owner: idx}
		position[idx] = i
	}

	for _, lf := range be.logFactors {
		best, bestPos := -1, math.MaxInt
		for _, vidx := range lf.varOrder {
			if pos, ok := position[vidx]; ok && pos < bestPos {
				best, bestPos = vidx, pos
			}
		}
		if best == -1 {
			// Every variable of this factor is evidential: its value is a
			// constant factor of the partition function, cancelled by
			// normalization, so it needs no bucket.
			continue
		}
		buckets[best].input = append(buckets[best].input, lf)
	}

	var pending []*logFactor
	for _, v := range be.order {
		b := buckets[v]
		var keep []*logFactor
		for _, lf := range pending {
			if containsInt(lf.varOrder, v) {
				b.input = append(b.input, lf)
			} else {
				keep = append(keep, lf)
			}
		}
		pending = keep

		free := freeVarsOf(be.vars, b.input, v)
		if len(b.input) == 0 || len(free) == 0 {
			logger.Trace("bucket skipped", "var", be.vars[v].name)
			continue
		}
		psi := sumOutBucket(be.vars, b.input, v, free)
		logger.Trace("bucket summed out", "var", be.vars[v].name, "free", len(free))
		pending = append(pending, psi)
	}
	for _, q := range be.query {
		b := buckets[q]
		var keep []*logFactor
		for _, lf := range pending {
			if containsInt(lf.varOrder, q) {
				b.input = append(b.input, lf)
			} else {
				keep = append(keep, lf)
			}
		}
		pending = keep
	}

	qs := evaluateAssignments(be.vars, be.query)
	ns := make([]float64, len(qs))
	for i, y := range qs {
		assign := make(map[int]string, len(be.query))
		for j, qidx := range be.query {
			assign[qidx] = y[j]
		}
		sum := 0.0
		for _, qidx := range be.query {
			for _, g := range buckets[qidx].input {
				gFree := g.FreeVars()
				args := make([]string, len(gFree))
				for k, gv := range gFree {
					args[k] = assign[gv]
				}
				v, err := g.eval(args)
				if err != nil {
					return err
				}
				sum += v
			}
		}
		ns[i] = math.Exp(sum)
	}
	z := kahanSum(ns)
	dist := make(Distribution, len(qs))
	for i, y := range qs {
		dist[key(y)] = ns[i] / z
	}
	be.dist = dist
	return nil
}

// freeVarsOf computes a bucket's free variables (spec.md §3): every
// variable mentioned by any of its input log-factors other than v itself,
// sorted by name.
func freeVarsOf(vars []*innerVariable, input []*logFactor, v int) []int {
	set := make(map[int]bool)
	for _, lf := range input {
		for _, idx := range lf.FreeVars() {
			if idx != v {
				set[idx] = true
			}
		}
	}
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return vars[out[i]].name < vars[out[j]].name })
	return out
}

// sumOutBucket implements spec.md §4.6 step 4: emit
// ψ_v(free) = ln Σ_{x ∈ dom(v)} exp(Σ_g g(free, v=x)), via log-sum-exp.
func sumOutBucket(vars []*innerVariable, input []*logFactor, v int, free []int) *logFactor {
	domain := append([]string(nil), vars[v].domain...)

	raw := func(values ...string) (float64, error) {
		assign := make(map[int]string, len(free)+1)
		for i, fidx := range free {
			assign[fidx] = values[i]
		}
		terms := make([]float64, 0, len(domain))
		for _, x := range domain {
			assign[v] = x
			l := 0.0
			for _, g := range input {
				gFree := g.FreeVars()
				args := make([]string, len(gFree))
				for i, gv := range gFree {
					args[i] = assign[gv]
				}
				gv, err := g.eval(args)
				if err != nil {
					return 0, err
				}
				l += gv
			}
			terms = append(terms, l)
		}
		return logSumExp(terms), nil
	}

	return &logFactor{
		name:     "log_f_" + vars[v].name,
		varOrder: append([]int(nil), free...),
		bound:    make(map[int]string),
		raw:      raw,
	}
}

// PD returns the stored probability of one joint query assignment, in
// query order, after a successful Run.
func (be *BE) PD(values ...string) (float64, error) {
	return pdLookup(be.dist, be.vars, be.query, values)
}

// PrintPD prints every joint query assignment and its probability to
// stdout.
func (be *BE) PrintPD() error {
	return printPD(be.dist, be.vars, be.query, be.PD)
}
