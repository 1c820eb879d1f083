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

import "strings"

// GBE composes Greedy Ordering and Bucket Elimination (spec.md §4.7) over a
// single shared inner model: the order produced by GO is installed directly
// on the embedded BE's index space, with no second snapshot and no
// outer-model round trip.
type GBE struct {
	*BE

	orderCache map[string][]int
}

// NewGBE snapshots g once and returns a GBE instance; the embedded BE
// supplies SetQuery, SetEvidence, PD and PrintPD.
func NewGBE(g FactorGraph, opts ...Option) (*GBE, error) {
	be, err := NewBE(g, opts...)
	if err != nil {
		return nil, err
	}
	return &GBE{BE: be, orderCache: make(map[string][]int)}, nil
}

// ClearOrderCache drops every memoized elimination order (spec.md §5).
func (gbe *GBE) ClearOrderCache() {
	gbe.orderCache = make(map[string][]int)
}

// orderCacheKey combines the query signature, the evidence key, and the
// cost function: changing the query or the evidence yields a fresh key, so
// stale entries are simply never hit again rather than requiring explicit
// invalidation (spec.md §4.7 cache-invalidation note).
func (gbe *GBE) orderCacheKey(cost string) string {
	names := make([]string, len(gbe.query))
	for i, idx := range gbe.query {
		names[i] = gbe.vars[idx].name
	}
	return strings.Join(names, ",") + "|" + gbe.evidenceKey() + "|" + cost
}

// Run looks up (or computes and caches) an elimination order under the
// current query and evidence, installs it on the embedded BE, and runs it.
func (gbe *GBE) Run(cost string) error {
	if len(gbe.query) == 0 {
		return ErrQueryNotSet
	}
	if err := gbe.CheckQueryAndEvidence(); err != nil {
		return err
	}

	ck := gbe.orderCacheKey(cost)
	order, ok := gbe.orderCache[ck]
	if !ok {
		computed, err := computeOrder(gbe.base, cost)
		if err != nil {
			return err
		}
		order = computed
		gbe.orderCache[ck] = order
		gbe.logger.Trace("elimination order computed", "cost", cost, "size", len(order))
	}
	gbe.setEliminationOrderIdx(order)
	return gbe.BE.Run()
}
