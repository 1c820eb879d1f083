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
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Option configures an algorithm at construction time.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger attaches a logger; every algorithm defaults to a null logger,
// so passing one is how a caller opts into the loop-pass, message, and
// bucket tracing that the Python implementation gated behind a print_info
// bool.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts ...Option) options {
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// runTag returns a short opaque identifier for one run() call, attached to
// every trace line that run emits so that overlapping invocations (e.g. from
// a CLI driving several queries back to back) can be told apart in logs.
func runTag() string {
	return uuid.New().String()[:8]
}
