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

// Command bayesinfer is a thin CLI collaborator over the infer package: it
// loads one of the built-in example models, wires a query and evidence onto
// it, runs an inference core, and prints the resulting distribution. None of
// this logic belongs to the core; it exists only to exercise the public
// API end to end.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ax-va/bayesnet/examples"
	"github.com/ax-va/bayesnet/infer"
	"github.com/ax-va/bayesnet/model"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bayesinfer:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		modelName    string
		algorithm    string
		cost         string
		queryArgs    []string
		evidenceArgs []string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "bayesinfer",
		Short: "Exact inference over a handful of built-in factor graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := hclog.NewNullLogger()
			if verbose {
				logger = hclog.New(&hclog.LoggerOptions{Name: "bayesinfer", Level: hclog.Trace})
			}

			g, err := loadModel(modelName)
			if err != nil {
				return err
			}
			graph := infer.Wrap(g)

			query, err := resolveVariables(g, queryArgs)
			if err != nil {
				return err
			}
			evidence, err := resolveEvidence(g, evidenceArgs)
			if err != nil {
				return err
			}

			switch algorithm {
			case "bp":
				bp, err := infer.NewBP(graph, infer.WithLogger(logger))
				if err != nil {
					return err
				}
				if err := bp.SetQuery(query...); err != nil {
					return err
				}
				if err := bp.SetEvidence(evidence...); err != nil {
					return err
				}
				if err := bp.Run(); err != nil {
					return err
				}
				return bp.PrintPD()
			case "gbe":
				gbe, err := infer.NewGBE(graph, infer.WithLogger(logger))
				if err != nil {
					return err
				}
				if err := gbe.SetQuery(query...); err != nil {
					return err
				}
				if err := gbe.SetEvidence(evidence...); err != nil {
					return err
				}
				if err := gbe.Run(cost); err != nil {
					return err
				}
				return gbe.PrintPD()
			default:
				return fmt.Errorf("unknown algorithm %q (want bp or gbe)", algorithm)
			}
		},
	}

	cmd.Flags().StringVar(&modelName, "model", "student", "built-in model: student, extended-student, misconception")
	cmd.Flags().StringVar(&algorithm, "algorithm", "bp", "inference algorithm: bp or gbe")
	cmd.Flags().StringVar(&cost, "cost", infer.CostMinFill, "GBE cost function: min-fill or weighted-min-fill")
	cmd.Flags().StringSliceVar(&queryArgs, "query", nil, "query variable names")
	cmd.Flags().StringSliceVar(&evidenceArgs, "evidence", nil, "evidence as Variable=value, repeatable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace-level logging of the inference run")

	return cmd
}

func loadModel(name string) (*model.FactorGraph, error) {
	switch name {
	case "student":
		return examples.NewStudent(), nil
	case "extended-student":
		return examples.NewExtendedStudent(), nil
	case "misconception":
		return examples.NewMisconception(), nil
	default:
		return nil, fmt.Errorf("unknown model %q (want student, extended-student or misconception)", name)
	}
}

func resolveVariables(g *model.FactorGraph, names []string) ([]infer.Variable, error) {
	vars := make([]infer.Variable, 0, len(names))
	for _, n := range names {
		v, err := g.Variable(n)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func resolveEvidence(g *model.FactorGraph, pairs []string) ([]infer.Evidence, error) {
	ev := make([]infer.Evidence, 0, len(pairs))
	for _, p := range pairs {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("evidence %q must be of the form Variable=value", p)
		}
		v, err := g.Variable(parts[0])
		if err != nil {
			return nil, err
		}
		ev = append(ev, infer.Evidence{Var: v, Value: parts[1]})
	}
	return ev, nil
}
