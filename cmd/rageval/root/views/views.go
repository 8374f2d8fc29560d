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

// Package views implements the single-run view verbs: crosstab, histogram,
// correlation, and categories.
package views

import (
	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/root"
	"google.golang.org/rageval/evaluation"
)

type crosstabFlags struct {
	bands bool
}

var Flags crosstabFlags

// bandedCrossTab is the crosstab output with the optional display bands.
type bandedCrossTab struct {
	*evaluation.CrossTab
	Bands [][]evaluation.ScoreBand `json:"bands,omitempty"`
}

var crosstabCmd = &cobra.Command{
	Use:   "crosstab <run-id>",
	Short: "Print the metric x question-type heatmap grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		stats := evaluation.ComputeStatistics(run)
		grid := evaluation.ComputeCrossTab(stats, run.Flatten())

		out := bandedCrossTab{CrossTab: grid}
		if Flags.bands {
			out.Bands = bandsFor(grid)
		}
		return root.PrintJSON(out)
	},
}

var histogramCmd = &cobra.Command{
	Use:   "histogram <run-id>",
	Short: "Print the per-test-case score distribution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return root.PrintJSON(evaluation.ComputeScoreHistogram(run.Flatten()))
	},
}

var correlationCmd = &cobra.Command{
	Use:   "correlation <run-id>",
	Short: "Print the metric correlation matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return root.PrintJSON(evaluation.ComputeCorrelationMatrix(run.Flatten()))
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories <run-id>",
	Short: "Print the retrieval/generation/system roll-up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		stats := evaluation.ComputeStatistics(run)
		return root.PrintJSON(evaluation.ComputeComponentAverages(stats.MetricsSummary))
	},
}

func bandsFor(grid *evaluation.CrossTab) [][]evaluation.ScoreBand {
	bands := make([][]evaluation.ScoreBand, len(grid.Cells))
	for i, row := range grid.Cells {
		bands[i] = make([]evaluation.ScoreBand, len(row))
		for j, v := range row {
			bands[i][j] = evaluation.BandForScore(v)
		}
	}
	return bands
}

func init() {
	root.RootCmd.AddCommand(crosstabCmd, histogramCmd, correlationCmd, categoriesCmd)

	crosstabCmd.Flags().BoolVar(&Flags.bands, "bands", false, "include the display band of every cell")
}
