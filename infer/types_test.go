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

	"github.com/ax-va/bayesnet/examples"
)

func TestWrapExposesAllVariablesAndFactors(t *testing.T) {
	g := examples.NewStudent()
	wrapped := Wrap(g)

	assert.Len(t, wrapped.Variables(), len(g.Variables()))
	assert.Len(t, wrapped.Factors(), len(g.Factors()))
}

func TestKeyIsStableAndDistinguishesTuples(t *testing.T) {
	a := key([]string{"x0", "y0"})
	b := key([]string{"x0", "y0"})
	c := key([]string{"x0,y0"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
