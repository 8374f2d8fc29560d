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

// Package evaluation turns the raw records a RAG evaluation pipeline writes
// into the aggregates that drive dashboards: per-metric statistics,
// category roll-ups, correlation matrices, heatmap grids, and score
// distributions.
//
// The package never scores anything itself. It consumes finished
// EvaluationRun records, treats them as read-only, and recomputes every
// derived structure on demand; nothing derived is ever persisted.
//
// # Core Concepts
//
// EvaluationRun: one complete evaluation execution, a tree of goals,
// questions, and metric results, with optional per-test-case detail
//
// Statistics: the per-run reduction, goal summaries, per-metric
// min/max/mean/std-dev, and question-type performance
//
// ScoredCase: one flattened (metric, test case) observation, the unit the
// correlation, cross-tab, and histogram transforms work from
//
// Repository: storage for runs, with file, in-memory, and SQLite backends
// in the storage subpackage
//
// # Data Shape
//
// Runs are ragged by design. Not every test case is scored for every
// metric, runs being compared rarely share a metric set, and per-test-case
// detail may be missing entirely. The transforms keep that sparsity
// explicit: a metric absent from a run never shows up in the run's derived
// structures with a synthesized zero. Only the cross-tab grid fills cells,
// through its documented fallback chain.
//
// All stored scores lie in [0, 1]. Percentages are a presentation transform
// applied at the category roll-up boundary, never stored.
//
// # Example Usage
//
//	repo, err := storage.NewFileRepository("evaluation_results")
//	if err != nil {
//	    return err
//	}
//	run, err := repo.Get(ctx, "eval_20250602_150405")
//	if err != nil {
//	    return err
//	}
//
//	stats := evaluation.ComputeStatistics(run)
//	grid := evaluation.ComputeCrossTab(stats, run.Flatten())
//	hist := evaluation.ComputeScoreHistogram(run.Flatten())
//
// Cross-run views (bars, radar, diff grids, time series) live in the
// comparison subpackage.
package evaluation
