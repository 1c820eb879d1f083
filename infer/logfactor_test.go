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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInnerFactor() *innerFactor {
	values := map[string]map[string]float64{
		"a0": {"b0": 0.25, "b1": 0.75},
		"a1": {"b0": 0.6, "b1": 0.4},
	}
	return &innerFactor{
		idx:    0,
		name:   "f_ab",
		varIdx: []int{0, 1},
		eval: func(v ...string) (float64, error) {
			return values[v[0]][v[1]], nil
		},
	}
}

func TestNewLogFactorEvalIsLogOfUnderlyingFactor(t *testing.T) {
	lf := newLogFactor(newTestInnerFactor())
	got, err := lf.eval([]string{"a0", "b1"})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.75), got, 1e-12)
}

func TestLogFactorBindRemovesFromFreeVars(t *testing.T) {
	lf := newLogFactor(newTestInnerFactor())
	assert.Equal(t, []int{0, 1}, lf.FreeVars())

	lf.Bind(0, "a0")
	assert.Equal(t, []int{1}, lf.FreeVars())

	got, err := lf.eval([]string{"b1"})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.75), got, 1e-12)
}

func TestLogFactorUnbindRestoresFreeVar(t *testing.T) {
	lf := newLogFactor(newTestInnerFactor())
	lf.Bind(1, "b0")
	assert.Equal(t, []int{0}, lf.FreeVars())

	lf.Unbind(1)
	assert.Equal(t, []int{0, 1}, lf.FreeVars())
}

func TestLogFactorBindIgnoresVariableNotInFactor(t *testing.T) {
	lf := newLogFactor(newTestInnerFactor())
	lf.Bind(99, "whatever")
	assert.Equal(t, []int{0, 1}, lf.FreeVars())
}
