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

// Package runs implements the rageval runs verbs: list, show, stats, and
// import.
package runs

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/root"
	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/storage"
)

type importFlags struct {
	from string
}

var Flags importFlags

// RunsCmd groups the run inspection verbs.
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage stored evaluation runs",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := root.OpenRepository()
		if err != nil {
			return err
		}
		infos, err := repo.List(cmd.Context())
		if err != nil {
			return err
		}
		return root.PrintJSON(infos)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one run's raw record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return root.PrintJSON(run)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <run-id>",
	Short: "Print one run's derived statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := root.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return root.PrintJSON(evaluation.ComputeStatistics(run))
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a results directory into the configured repository",
	Long: `Import reads every run file from a results directory and saves it
through the configured storage backend. Point RAGEVAL_STORAGE at sqlite to
build a queryable archive from the pipeline's flat files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from := Flags.from
		if from == "" {
			from = root.Config().ResultsDir
		}
		source, err := storage.NewFileRepository(from)
		if err != nil {
			return err
		}
		target, err := root.OpenRepository()
		if err != nil {
			return err
		}

		infos, err := source.List(ctx)
		if err != nil {
			return err
		}

		var imported, skipped int
		for _, info := range infos {
			run, err := source.Get(ctx, info.ID)
			if err != nil {
				log.Warn().Str("run_id", info.ID).Err(err).Msg("Skipping unreadable run")
				skipped++
				continue
			}
			if err := target.Save(ctx, run); err != nil {
				return err
			}
			imported++
		}

		return root.PrintJSON(struct {
			Imported int `json:"imported"`
			Skipped  int `json:"skipped"`
		}{Imported: imported, Skipped: skipped})
	},
}

func init() {
	root.RootCmd.AddCommand(RunsCmd)
	RunsCmd.AddCommand(listCmd, showCmd, statsCmd, importCmd)

	importCmd.Flags().StringVar(&Flags.from, "from", "", "results directory to import (defaults to RAGEVAL_RESULTS_DIR)")
}
