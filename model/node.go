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

// Package model implements the outer, caller-owned factor graph: random
// variables with categorical domains and the factors that reference them.
// This is the "external collaborator" that the infer package's core
// algorithms consume through a narrow interface; model never imports infer.
package model

// node is embedded by Variable and Factor to give both a stable name.
type node struct {
	name string
}

func (n node) Name() string {
	return n.name
}

func (n node) String() string {
	return n.name
}
