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

import "errors"

// Sentinel errors, matching spec.md §7. Compare with errors.Is; wrapped
// occurrences carry the offending name or value via fmt.Errorf("...: %w").
var (
	ErrUnknownVariable         = errors.New("infer: unknown variable")
	ErrDuplicateQueryVariable  = errors.New("infer: duplicate query variable")
	ErrDuplicateEvidence       = errors.New("infer: duplicate evidence variable")
	ErrValueOutOfDomain        = errors.New("infer: value out of domain")
	ErrQueryEvidenceOverlap    = errors.New("infer: query and evidence overlap")
	ErrQueryNotSet             = errors.New("infer: query not set")
	ErrEliminationOrderNotSet  = errors.New("infer: elimination order not set")
	ErrNotSingleVariableQuery  = errors.New("infer: query must contain exactly one variable")
	ErrOrderCoverageInvalid    = errors.New("infer: elimination order does not partition the non-evidential, non-query variables")
	ErrNotATree                = errors.New("infer: factor graph is not a tree")
	ErrDistributionNotComputed = errors.New("infer: distribution not computed")
	ErrArityMismatch           = errors.New("infer: wrong number of values for query arity")
)
