// Copyright 2025 Google LLC
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

// Package plan implements the rageval plan verbs for the evaluation plan
// YAML the scoring pipeline consumes.
package plan

import (
	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/root"
	"google.golang.org/rageval/evaluation"
)

type planFlags struct {
	file string
}

var Flags planFlags

// PlanCmd groups the evaluation-plan verbs.
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect and validate the evaluation plan",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the parsed evaluation plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := evaluation.LoadPlan(Flags.file)
		if err != nil {
			return err
		}
		return root.PrintJSON(plan)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the evaluation plan for structural problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := evaluation.LoadPlan(Flags.file)
		if err != nil {
			return err
		}
		if err := plan.Validate(); err != nil {
			return err
		}
		return root.PrintJSON(struct {
			Valid               bool                  `json:"valid"`
			UnclassifiedMetrics []evaluation.MetricID `json:"unclassified_metrics"`
		}{Valid: true, UnclassifiedMetrics: plan.UnclassifiedMetrics()})
	},
}

func init() {
	root.RootCmd.AddCommand(PlanCmd)
	PlanCmd.AddCommand(showCmd, validateCmd)

	PlanCmd.PersistentFlags().StringVarP(&Flags.file, "file", "f", "evaluation_config.yaml", "path to the evaluation plan YAML")
}
