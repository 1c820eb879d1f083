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

func TestFactorVarNamesMatchesArgumentOrder(t *testing.T) {
	d := NewVariable("Difficulty", "d0", "d1")
	i := NewVariable("Intelligence", "i0", "i1")
	f := NewFactor("f_di", func(v ...string) (float64, error) { return 1, nil }, d, i)

	assert.Equal(t, []string{"Difficulty", "Intelligence"}, f.VarNames())
	assert.Equal(t, []*Variable{d, i}, f.Vars())
}

func TestFactorEvalDelegatesToFunc(t *testing.T) {
	d := NewVariable("Difficulty", "d0", "d1")
	f := NewFactor("f_d", func(v ...string) (float64, error) {
		if v[0] == "d0" {
			return 0.6, nil
		}
		return 0.4, nil
	}, d)

	p, err := f.Eval("d0")
	assert.NoError(t, err)
	assert.Equal(t, 0.6, p)

	p, err = f.Eval("d1")
	assert.NoError(t, err)
	assert.Equal(t, 0.4, p)
}

func TestNewFactorPanicsOnDuplicateVariable(t *testing.T) {
	d := NewVariable("Difficulty", "d0", "d1")
	assert.Panics(t, func() {
		NewFactor("bad", func(v ...string) (float64, error) { return 1, nil }, d, d)
	})
}

func TestFactorString(t *testing.T) {
	d := NewVariable("Difficulty", "d0", "d1")
	i := NewVariable("Intelligence", "i0", "i1")
	f := NewFactor("f_di", func(v ...string) (float64, error) { return 1, nil }, d, i)
	assert.Equal(t, "f_di(Difficulty, Intelligence)", f.String())
}
