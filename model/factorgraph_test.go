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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFactorGraphSortsVariablesAndFactorsByName(t *testing.T) {
	x := NewVariable("X", "x0")
	y := NewVariable("Y", "y0")
	z := NewVariable("Z", "z0")
	fB := NewFactor("b_factor", func(v ...string) (float64, error) { return 1, nil }, z, x)
	fA := NewFactor("a_factor", func(v ...string) (float64, error) { return 1, nil }, y)

	g := NewFactorGraph(fB, fA)

	names := make([]string, 0)
	for _, v := range g.Variables() {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"X", "Y", "Z"}, names)

	fnames := make([]string, 0)
	for _, f := range g.Factors() {
		fnames = append(fnames, f.Name())
	}
	assert.Equal(t, []string{"a_factor", "b_factor"}, fnames)
}

func TestFactorGraphVariableAndFactorLookup(t *testing.T) {
	x := NewVariable("X", "x0")
	f := NewFactor("f_x", func(v ...string) (float64, error) { return 1, nil }, x)
	g := NewFactorGraph(f)

	v, err := g.Variable("X")
	assert.NoError(t, err)
	assert.Same(t, x, v)

	got, err := g.Factor("f_x")
	assert.NoError(t, err)
	assert.Same(t, f, got)

	_, err = g.Variable("Nope")
	assert.Error(t, err)

	_, err = g.Factor("nope")
	assert.Error(t, err)
}

func TestFactorGraphDeduplicatesSharedVariables(t *testing.T) {
	x := NewVariable("X", "x0")
	y := NewVariable("Y", "y0")
	f1 := NewFactor("f_x", func(v ...string) (float64, error) { return 1, nil }, x)
	f2 := NewFactor("f_xy", func(v ...string) (float64, error) { return 1, nil }, x, y)

	g := NewFactorGraph(f1, f2)
	assert.Len(t, g.Variables(), 2)
}
