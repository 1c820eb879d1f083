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

import "math"

// kahanSum adds up xs with Neumaier compensation, so that the order in
// which the terms are summed cannot change the result beyond floating-point
// round-off. It is used for the normalization constants of BP and BE and for
// the sum of shifted exponentials inside logSumExp; additions of log-space
// messages and factor values elsewhere use plain +.
func kahanSum(xs []float64) float64 {
	var sum, c float64
	for _, x := range xs {
		t := sum + x
		if math.Abs(sum) >= math.Abs(x) {
			c += (sum - t) + x
		} else {
			c += (x - t) + sum
		}
		sum = t
	}
	return sum + c
}

// logSumExp computes ln Sum_i exp(xs[i]) via the shift-by-max identity:
// ln Sum_i exp(xs[i]) = M + ln Sum_i exp(xs[i] - M), with M = max_i xs[i].
// This is the numerically stable routine every factor-to-message and
// bucket-to-factor reduction in this package uses instead of a naive sum of
// exponentials. Returns -Inf for an empty slice, matching ln(0).
func logSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	if math.IsInf(m, -1) {
		return m
	}
	shifted := make([]float64, len(xs))
	for i, x := range xs {
		shifted[i] = math.Exp(x - m)
	}
	return m + math.Log(kahanSum(shifted))
}
