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

func TestPDLookupRejectsWrongArity(t *testing.T) {
	g := examples.NewStudent()
	bp, err := NewBP(Wrap(g))
	require.NoError(t, err)

	grade, err := g.Variable("Grade")
	require.NoError(t, err)
	require.NoError(t, bp.SetQuery(grade))
	require.NoError(t, bp.Run())

	_, err = bp.PD("g0", "g1")
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestPDLookupRejectsValueOutOfDomain(t *testing.T) {
	g := examples.NewStudent()
	bp, err := NewBP(Wrap(g))
	require.NoError(t, err)

	grade, err := g.Variable("Grade")
	require.NoError(t, err)
	require.NoError(t, bp.SetQuery(grade))
	require.NoError(t, bp.Run())

	_, err = bp.PD("bogus")
	assert.ErrorIs(t, err, ErrValueOutOfDomain)
}

func TestPrintPDBeforeRunErrors(t *testing.T) {
	g := examples.NewStudent()
	bp, err := NewBP(Wrap(g))
	require.NoError(t, err)

	err = bp.PrintPD()
	assert.ErrorIs(t, err, ErrDistributionNotComputed)
}

func TestPrintPDAfterRunSucceeds(t *testing.T) {
	g := examples.NewStudent()
	bp, err := NewBP(Wrap(g))
	require.NoError(t, err)

	grade, err := g.Variable("Grade")
	require.NoError(t, err)
	require.NoError(t, bp.SetQuery(grade))
	require.NoError(t, bp.Run())

	assert.NoError(t, bp.PrintPD())
}
