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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ax-va/bayesnet/examples"
)

func TestGBEAgreesWithBEOnJointQuery(t *testing.T) {
	g := examples.NewStudent()

	letter, err := g.Variable("Letter")
	require.NoError(t, err)
	sat, err := g.Variable("SAT")
	require.NoError(t, err)

	gbe, err := NewGBE(Wrap(g))
	require.NoError(t, err)
	require.NoError(t, gbe.SetQuery(letter, sat))
	require.NoError(t, gbe.Run(CostMinFill))

	p00, err := gbe.PD("l0", "s0")
	require.NoError(t, err)
	p01, err := gbe.PD("l0", "s1")
	require.NoError(t, err)
	p10, err := gbe.PD("l1", "s0")
	require.NoError(t, err)
	p11, err := gbe.PD("l1", "s1")
	require.NoError(t, err)

	assert.InDelta(t, 0.4205178, p00, 1e-7)
	assert.InDelta(t, 0.0771462, p01, 1e-7)
	assert.InDelta(t, 0.3044822, p10, 1e-7)
	assert.InDelta(t, 0.1978538, p11, 1e-7)
}

func TestGBEOrderCacheReusesOrderForSameQueryAndEvidence(t *testing.T) {
	g := examples.NewExtendedStudent()
	letter, err := g.Variable("Letter")
	require.NoError(t, err)
	sat, err := g.Variable("SAT")
	require.NoError(t, err)

	gbe, err := NewGBE(Wrap(g))
	require.NoError(t, err)
	require.NoError(t, gbe.SetQuery(letter, sat))

	require.NoError(t, gbe.Run(CostMinFill))
	key := gbe.orderCacheKey(CostMinFill)
	cached, ok := gbe.orderCache[key]
	require.True(t, ok)

	require.NoError(t, gbe.Run(CostMinFill))
	cachedAgain, ok := gbe.orderCache[key]
	require.True(t, ok)
	assert.Equal(t, cached, cachedAgain)
}

func TestGBEOrderCacheKeyChangesWithEvidence(t *testing.T) {
	g := examples.NewExtendedStudent()
	letter, err := g.Variable("Letter")
	require.NoError(t, err)
	sat, err := g.Variable("SAT")
	require.NoError(t, err)
	job, err := g.Variable("Job")
	require.NoError(t, err)

	gbe, err := NewGBE(Wrap(g))
	require.NoError(t, err)
	require.NoError(t, gbe.SetQuery(letter, sat))
	k1 := gbe.orderCacheKey(CostMinFill)

	require.NoError(t, gbe.SetEvidence(Evidence{Var: job, Value: "j0"}))
	k2 := gbe.orderCacheKey(CostMinFill)

	assert.NotEqual(t, k1, k2)
}

func TestGBEClearOrderCache(t *testing.T) {
	g := examples.NewStudent()
	letter, err := g.Variable("Letter")
	require.NoError(t, err)

	gbe, err := NewGBE(Wrap(g))
	require.NoError(t, err)
	require.NoError(t, gbe.SetQuery(letter))
	require.NoError(t, gbe.Run(CostMinFill))
	assert.NotEmpty(t, gbe.orderCache)

	gbe.ClearOrderCache()
	assert.Empty(t, gbe.orderCache)
}

func TestGBEWeightedMinFillAlsoProducesValidDistribution(t *testing.T) {
	g := examples.NewExtendedStudent()
	happy, err := g.Variable("Happy")
	require.NoError(t, err)

	gbe, err := NewGBE(Wrap(g))
	require.NoError(t, err)
	require.NoError(t, gbe.SetQuery(happy))
	require.NoError(t, gbe.Run(CostWeightedMinFill))

	total := 0.0
	for _, x := range []string{"h0", "h1", "h2"} {
		p, err := gbe.PD(x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}
