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

// Package compare implements the rageval compare verb.
package compare

import (
	"fmt"

	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/root"
	"google.golang.org/rageval/evaluation/comparison"
	"google.golang.org/rageval/internal/telemetry"
)

type compareFlags struct {
	runs []string
}

var Flags compareFlags

var compareCmd = &cobra.Command{
	Use:   "compare --run <current> [--run <other> ...]",
	Short: "Build cross-run comparison views",
	Long: `Compare assembles the side-by-side views for the selected runs: category
bars, a goal radar, per-run heatmaps, the two-run diff grid, and the score
time series. The first --run is the current run; view ordering follows it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(Flags.runs) == 0 {
			return fmt.Errorf("at least one --run id is required")
		}

		ctx := cmd.Context()
		repo, err := root.OpenRepository()
		if err != nil {
			return err
		}
		session, err := comparison.NewSession(repo, comparison.WithCacheSize(root.Config().CacheSize))
		if err != nil {
			return err
		}

		spans := telemetry.StartTrace(ctx, "compare_runs")
		views, err := session.Select(ctx, Flags.runs[0], Flags.runs[1:]...)
		if err != nil {
			telemetry.TraceError(spans, err)
			return err
		}
		telemetry.TraceComparison(spans, views)
		telemetry.LogViewsBuilt(ctx, views)

		return root.PrintJSON(views)
	},
}

func init() {
	root.RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringArrayVar(&Flags.runs, "run", nil, "run id to include; repeat for comparison runs")
}
