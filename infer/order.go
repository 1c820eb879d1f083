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
)

// Cost names the two elimination-cost heuristics GO supports (spec.md §4.5,
// §9 "Cost-function polymorphism").
const (
	CostMinFill         = "min-fill"
	CostWeightedMinFill = "weighted-min-fill"
)

// costFunc scores eliminating v next, given the current moralized adjacency
// and each candidate's domain size.
type costFunc func(v int, adjacency map[int]map[int]bool, domSize map[int]int) float64

func costFuncFor(name string) (costFunc, error) {
	switch name {
	case CostMinFill:
		return minFillCost, nil
	case CostWeightedMinFill:
		return weightedMinFillCost, nil
	default:
		return nil, fmt.Errorf("infer: unknown cost function %q", name)
	}
}

func minFillCost(v int, adjacency map[int]map[int]bool, _ map[int]int) float64 {
	neighbors := sortedIntKeys(adjacency[v])
	missing := 0
	for i := 0; i < len(neighbors); i++ {
		for j := i + 1; j < len(neighbors); j++ {
			if !adjacency[neighbors[i]][neighbors[j]] {
				missing++
			}
		}
	}
	return float64(missing)
}

func weightedMinFillCost(v int, adjacency map[int]map[int]bool, domSize map[int]int) float64 {
	neighbors := sortedIntKeys(adjacency[v])
	total := 0.0
	for i := 0; i < len(neighbors); i++ {
		for j := i + 1; j < len(neighbors); j++ {
			a, b := neighbors[i], neighbors[j]
			if !adjacency[a][b] {
				total += float64(domSize[a]) * float64(domSize[b])
			}
		}
	}
	return total
}

func sortedIntKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// GO is the Greedy Ordering heuristic (spec.md §4.5): it moralizes the
// factor graph restricted to non-evidential variables and greedily picks
// the cheapest variable to eliminate next.
type GO struct {
	*base
	opts options
}

// NewGO snapshots g and returns a GO instance over the isolated inner copy.
func NewGO(g FactorGraph, opts ...Option) (*GO, error) {
	o := newOptions(opts...)
	b, err := snapshotGraph(g, o.logger)
	if err != nil {
		return nil, err
	}
	return &GO{base: b, opts: o}, nil
}

// Run computes an elimination order for the current query and evidence
// using the named cost function, returned as inner variable indices.
func (g *GO) Run(cost string) ([]int, error) {
	return computeOrder(g.base, cost)
}

// computeOrder implements spec.md §4.5 against a bare inner model, so that
// GBE can drive it directly over the same Controller its BE half uses,
// rather than maintaining a second snapshot.
func computeOrder(b *base, cost string) ([]int, error) {
	cf, err := costFuncFor(cost)
	if err != nil {
		return nil, err
	}

	inQuery := make(map[int]bool, len(b.query))
	for _, q := range b.query {
		inQuery[q] = true
	}

	// The moralized graph itself spans every non-evidential variable,
	// including the query: a query variable still participates as a
	// neighbor so fill-in costs against it are counted correctly. Only the
	// elimination order's candidate/output set (below) excludes it.
	nonEvidential := make([]int, 0, len(b.vars))
	inGraph := make(map[int]bool, len(b.vars))
	for _, v := range b.vars {
		if v.evidential() {
			continue
		}
		nonEvidential = append(nonEvidential, v.idx)
		inGraph[v.idx] = true
	}

	candidates := make([]int, 0, len(nonEvidential))
	for _, vi := range nonEvidential {
		if inQuery[vi] {
			continue
		}
		candidates = append(candidates, vi)
	}

	adjacency := make(map[int]map[int]bool, len(nonEvidential))
	for _, vi := range nonEvidential {
		adjacency[vi] = make(map[int]bool)
	}
	for _, f := range b.factors {
		var members []int
		for _, vi := range f.varIdx {
			if inGraph[vi] {
				members = append(members, vi)
			}
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				x, y := members[i], members[j]
				adjacency[x][y] = true
				adjacency[y][x] = true
			}
		}
	}

	domSize := make(map[int]int, len(b.vars))
	for _, v := range b.vars {
		domSize[v.idx] = len(v.outerDomain)
	}

	remaining := append([]int(nil), candidates...)
	eliminated := make(map[int]bool, len(candidates))
	order := make([]int, 0, len(candidates))

	for len(remaining) > 0 {
		bestPos, bestVar := 0, remaining[0]
		bestCost := math.Inf(1)
		for pos, v := range remaining {
			c := cf(v, adjacency, domSize)
			if c < bestCost {
				bestCost, bestVar, bestPos = c, v, pos
			}
		}

		order = append(order, bestVar)
		eliminated[bestVar] = true

		neighbors := sortedIntKeys(adjacency[bestVar])
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				x, y := neighbors[i], neighbors[j]
				if eliminated[x] || eliminated[y] {
					continue
				}
				adjacency[x][y] = true
				adjacency[y][x] = true
			}
		}
		for _, n := range neighbors {
			delete(adjacency[n], bestVar)
		}
		delete(adjacency, bestVar)

		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	return order, nil
}
