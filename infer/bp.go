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
	"math"
)

// edgeKey identifies one factor-variable edge, independent of direction:
// fvCache and vfCache both key on (factor index, variable index).
type edgeKey struct {
	factor, variable int
}

type messageTable map[edgeKey]map[string]float64

// BP is the Belief Propagation core (spec.md §4.4): exact single-variable
// marginal/conditional inference on factor-graph trees via log-space message
// passing, rooted at the query variable.
type BP struct {
	*base
	opts options

	fvCache map[string]messageTable // evidence key -> factor->variable messages
	vfCache map[string]messageTable // evidence key -> variable->factor messages

	dist Distribution
}

// NewBP snapshots g and returns a BP instance over the isolated inner copy.
func NewBP(g FactorGraph, opts ...Option) (*BP, error) {
	o := newOptions(opts...)
	b, err := snapshotGraph(g, o.logger)
	if err != nil {
		return nil, err
	}
	return &BP{
		base:    b,
		opts:    o,
		fvCache: make(map[string]messageTable),
		vfCache: make(map[string]messageTable),
	}, nil
}

// ClearCachedMessages drops every memoized message under every evidence key.
func (bp *BP) ClearCachedMessages() {
	bp.fvCache = make(map[string]messageTable)
	bp.vfCache = make(map[string]messageTable)
}

// Run executes one belief-propagation pass for the current query and
// evidence (spec.md §4.4). The query must be exactly one variable, and the
// factor graph must be a tree: a full round without progress is reported as
// ErrNotATree rather than looping forever.
func (bp *BP) Run() error {
	bp.dist = nil
	if len(bp.query) == 0 {
		return ErrQueryNotSet
	}
	if len(bp.query) != 1 {
		return ErrNotSingleVariableQuery
	}
	if err := bp.CheckQueryAndEvidence(); err != nil {
		return err
	}
	queryIdx := bp.query[0]
	ek := bp.evidenceKey()

	fv, ok := bp.fvCache[ek]
	if !ok {
		fv = make(messageTable)
		bp.fvCache[ek] = fv
	}
	vf, ok := bp.vfCache[ek]
	if !ok {
		vf = make(messageTable)
		bp.vfCache[ek] = vf
	}

	logger := bp.logger.With("run", runTag(), "query", bp.vars[queryIdx].name)

	passedFactor := make(map[int]bool, len(bp.factors))
	passedVar := make(map[int]bool, len(bp.vars))
	incomingFactor := make(map[int]int, len(bp.factors))
	incomingVar := make(map[int]int, len(bp.vars))
	nextFactors := make(map[int]bool)
	nextVars := make(map[int]bool)

	for _, f := range bp.factors {
		if len(f.varIdx) != 1 {
			continue
		}
		v := f.varIdx[0]
		ek2 := edgeKey{f.idx, v}
		if _, cached := fv[ek2]; !cached {
			msg, err := leafFactorMessage(bp.vars[v], f)
			if err != nil {
				return err
			}
			fv[ek2] = msg
		}
		passedFactor[f.idx] = true
		incomingVar[v]++
		if v != queryIdx && incomingVar[v]+1 == len(bp.vars[v].factorIdx) {
			nextVars[v] = true
		}
	}
	for _, v := range bp.vars {
		if len(v.factorIdx) != 1 || v.idx == queryIdx {
			continue
		}
		f := v.factorIdx[0]
		ek2 := edgeKey{f, v.idx}
		if _, cached := vf[ek2]; !cached {
			msg := make(map[string]float64, len(v.domain))
			for _, x := range v.domain {
				msg[x] = 0
			}
			vf[ek2] = msg
		}
		passedVar[v.idx] = true
		incomingFactor[f]++
		if incomingFactor[f]+1 == len(bp.factors[f].varIdx) {
			nextFactors[f] = true
		}
	}

	for incomingVar[queryIdx] != len(bp.vars[queryIdx].factorIdx) {
		fromFactors, fromVars := nextFactors, nextVars
		nextFactors, nextVars = make(map[int]bool), make(map[int]bool)
		progress := false

		for fidx := range fromFactors {
			f := bp.factors[fidx]
			var v int
			count := 0
			for _, n := range f.varIdx {
				if !passedVar[n] {
					count++
					v = n
				}
			}
			if count != 1 {
				continue
			}
			msg, err := bp.factorToVariableMessage(f, v, vf)
			if err != nil {
				return err
			}
			fv[edgeKey{f.idx, v}] = msg
			passedFactor[f.idx] = true
			incomingVar[v]++
			progress = true
			if v != queryIdx {
				remaining := 0
				for _, f2 := range bp.vars[v].factorIdx {
					if !passedFactor[f2] {
						remaining++
					}
				}
				if remaining == 1 {
					nextVars[v] = true
				}
			}
		}

		for vidx := range fromVars {
			v := bp.vars[vidx]
			var f int
			count := 0
			for _, n := range v.factorIdx {
				if !passedFactor[n] {
					count++
					f = n
				}
			}
			if count != 1 {
				continue
			}
			msg := bp.variableToFactorMessage(v, f, fv)
			vf[edgeKey{f, v.idx}] = msg
			passedVar[v.idx] = true
			incomingFactor[f]++
			progress = true
			remaining := 0
			for _, v2 := range bp.factors[f].varIdx {
				if !passedVar[v2] {
					remaining++
				}
			}
			if remaining == 1 {
				nextFactors[f] = true
			}
		}

		if !progress {
			return ErrNotATree
		}
		logger.Trace("round complete", "incoming_query", incomingVar[queryIdx])
	}

	qv := bp.vars[queryIdx]
	n := make(map[string]float64, len(qv.domain))
	total := make([]float64, 0, len(qv.domain))
	for _, x := range qv.domain {
		sum := 0.0
		for _, f := range qv.factorIdx {
			sum += fv[edgeKey{f, queryIdx}][x]
		}
		n[x] = math.Exp(sum)
		total = append(total, n[x])
	}
	z := kahanSum(total)
	dist := make(Distribution, len(qv.domain))
	for _, x := range qv.domain {
		dist[key([]string{x})] = n[x] / z
	}
	bp.dist = dist
	return nil
}

func leafFactorMessage(v *innerVariable, f *innerFactor) (map[string]float64, error) {
	msg := make(map[string]float64, len(v.domain))
	for _, x := range v.domain {
		p, err := f.eval(x)
		if err != nil {
			return nil, err
		}
		msg[x] = math.Log(p)
	}
	return msg, nil
}

// factorToVariableMessage implements the non-leaf factor-to-variable
// formula of spec.md §4.4, splitting f's other neighbors into evidential
// (contribute a fixed additive term) and free (summed out via log-sum-exp).
func (bp *BP) factorToVariableMessage(f *innerFactor, v int, vf messageTable) (map[string]float64, error) {
	var evidential, free []int
	for _, n := range f.varIdx {
		if n == v {
			continue
		}
		if bp.vars[n].evidential() {
			evidential = append(evidential, n)
		} else {
			free = append(free, n)
		}
	}

	sE := 0.0
	for _, n := range evidential {
		val := bp.vars[n].domain[0]
		sE += vf[edgeKey{f.idx, n}][val]
	}

	m := 0.0
	if len(free) > 0 {
		m = math.Inf(-1)
		for _, n := range free {
			for _, x := range bp.vars[n].domain {
				if val := vf[edgeKey{f.idx, n}][x]; val > m {
					m = val
				}
			}
		}
	}

	msg := make(map[string]float64, len(bp.vars[v].domain))
	assignments := evaluateAssignments(bp.vars, free)
	args := make([]string, len(f.varIdx))
	for _, x := range bp.vars[v].domain {
		terms := make([]float64, 0, len(assignments))
		for _, a := range assignments {
			for i, n := range f.varIdx {
				switch {
				case n == v:
					args[i] = x
				case bp.vars[n].evidential():
					args[i] = bp.vars[n].domain[0]
				default:
					args[i] = a[indexOf(free, n)]
				}
			}
			p, err := f.eval(args...)
			if err != nil {
				return nil, err
			}
			l := 0.0
			for i, n := range free {
				l += vf[edgeKey{f.idx, n}][a[i]]
			}
			terms = append(terms, math.Log(p)+l-m)
		}
		msg[x] = sE + m + logSumExp(terms)
	}
	return msg, nil
}

// variableToFactorMessage implements the non-leaf variable-to-factor
// formula of spec.md §4.4: the sum of every other incoming message.
func (bp *BP) variableToFactorMessage(v *innerVariable, f int, fv messageTable) map[string]float64 {
	msg := make(map[string]float64, len(v.domain))
	for _, x := range v.domain {
		sum := 0.0
		for _, f2 := range v.factorIdx {
			if f2 == f {
				continue
			}
			sum += fv[edgeKey{f2, v.idx}][x]
		}
		msg[x] = sum
	}
	return msg
}

func indexOf(xs []int, x int) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// PD returns the stored probability of one joint query assignment, in query
// order, after a successful Run.
func (bp *BP) PD(values ...string) (float64, error) {
	return pdLookup(bp.dist, bp.vars, bp.query, values)
}

// PrintPD prints every joint query assignment and its probability to
// stdout, in the style of the external print_pd operation (spec.md §6).
func (bp *BP) PrintPD() error {
	return printPD(bp.dist, bp.vars, bp.query, bp.PD)
}
