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

package comparison

import (
	"sort"
	"time"

	"google.golang.org/rageval/evaluation"
)

// Views is every cross-run view for one selection. Run order is selection
// order with the current run first, everywhere.
//
// Diff is present only when exactly two runs are selected; TimeSeries only
// when at least two runs are selected and every run has a known timestamp.
type Views struct {
	RunIDs     []string          `json:"run_ids"`
	Bars       []ComponentSeries `json:"bars"`
	Radar      *RadarComparison  `json:"radar"`
	Heatmaps   []RunHeatmap      `json:"heatmaps"`
	Diff       *HeatmapDiff      `json:"diff,omitempty"`
	TimeSeries *TimeSeriesView   `json:"time_series,omitempty"`
}

// ComponentSeries is one run's category roll-up for side-by-side bars.
type ComponentSeries struct {
	RunID      string                       `json:"run_id"`
	Components evaluation.ComponentAverages `json:"components"`
}

// RadarComparison aligns per-goal percentage scores across runs. Goals is
// the union of goal names in first-seen order; every series has exactly
// len(Goals) values, zero-filled where a run lacks the goal.
type RadarComparison struct {
	Goals  []string      `json:"goals"`
	Series []RadarSeries `json:"series"`
}

// RadarSeries is one run's goal-score vector, in percent.
type RadarSeries struct {
	RunID  string    `json:"run_id"`
	Values []float64 `json:"values"`
}

// RunHeatmap is one run's full cross-tabulation grid.
type RunHeatmap struct {
	RunID string               `json:"run_id"`
	Grid  *evaluation.CrossTab `json:"grid"`
}

// HeatmapDiff is the cell-by-cell difference (second - first) over the
// first run's grid shape. Pairs known only to the second run do not appear.
type HeatmapDiff struct {
	QuestionTypes []string              `json:"question_types"`
	MetricIDs     []evaluation.MetricID `json:"metric_ids"`
	Cells         [][]float64           `json:"cells"`
}

// TimeSeriesView is the chronological trend of the current run's goals.
// Points are ascending by run timestamp; each series holds one score per
// point, 0 where the run lacks the goal.
type TimeSeriesView struct {
	Points []TimePoint  `json:"points"`
	Series []GoalSeries `json:"series"`
}

// TimePoint identifies one run on the time axis.
type TimePoint struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
}

// GoalSeries is the score trend of one goal across the sorted runs.
type GoalSeries struct {
	Goal   string    `json:"goal"`
	Scores []float64 `json:"scores"`
}

// runSnapshot bundles the derived data the view builders consume for one
// run. Everything is recomputed per selection; runs themselves are the only
// cached state.
type runSnapshot struct {
	id    string
	run   *evaluation.EvaluationRun
	stats *evaluation.Statistics
	grid  *evaluation.CrossTab
}

func buildViews(ids []string, runs []*evaluation.EvaluationRun) *Views {
	snaps := make([]runSnapshot, len(runs))
	for i, run := range runs {
		stats := evaluation.ComputeStatistics(run)
		snaps[i] = runSnapshot{
			id:    ids[i],
			run:   run,
			stats: stats,
			grid:  evaluation.ComputeCrossTab(stats, run.Flatten()),
		}
	}

	views := &Views{
		RunIDs:   ids,
		Bars:     buildBars(snaps),
		Radar:    buildRadar(snaps),
		Heatmaps: buildHeatmaps(snaps),
	}
	if len(snaps) == 2 {
		views.Diff = buildDiff(snaps[0], snaps[1])
	}
	views.TimeSeries = buildTimeSeries(snaps)
	return views
}

func buildBars(snaps []runSnapshot) []ComponentSeries {
	bars := make([]ComponentSeries, 0, len(snaps))
	for _, snap := range snaps {
		bars = append(bars, ComponentSeries{
			RunID:      snap.id,
			Components: evaluation.ComputeComponentAverages(snap.stats.MetricsSummary),
		})
	}
	return bars
}

func buildRadar(snaps []runSnapshot) *RadarComparison {
	var goals []string
	seen := make(map[string]bool)
	for _, snap := range snaps {
		for _, g := range snap.stats.Goals {
			if !seen[g.Name] {
				seen[g.Name] = true
				goals = append(goals, g.Name)
			}
		}
	}

	series := make([]RadarSeries, 0, len(snaps))
	for _, snap := range snaps {
		byName := make(map[string]float64, len(snap.stats.Goals))
		for _, g := range snap.stats.Goals {
			byName[g.Name] = g.Score
		}
		values := make([]float64, len(goals))
		for i, name := range goals {
			values[i] = byName[name] * 100
		}
		series = append(series, RadarSeries{RunID: snap.id, Values: values})
	}
	return &RadarComparison{Goals: goals, Series: series}
}

func buildHeatmaps(snaps []runSnapshot) []RunHeatmap {
	heatmaps := make([]RunHeatmap, 0, len(snaps))
	for _, snap := range snaps {
		heatmaps = append(heatmaps, RunHeatmap{RunID: snap.id, Grid: snap.grid})
	}
	return heatmaps
}

func buildDiff(first, second runSnapshot) *HeatmapDiff {
	rows := make(map[string]int, len(second.grid.QuestionTypes))
	for i, qt := range second.grid.QuestionTypes {
		rows[qt] = i
	}
	cols := make(map[evaluation.MetricID]int, len(second.grid.MetricIDs))
	for j, id := range second.grid.MetricIDs {
		cols[id] = j
	}

	cells := make([][]float64, len(first.grid.QuestionTypes))
	for i, qt := range first.grid.QuestionTypes {
		cells[i] = make([]float64, len(first.grid.MetricIDs))
		for j, id := range first.grid.MetricIDs {
			cells[i][j] = secondValue(second, rows, cols, qt, id) - first.grid.Cells[i][j]
		}
	}
	return &HeatmapDiff{
		QuestionTypes: first.grid.QuestionTypes,
		MetricIDs:     first.grid.MetricIDs,
		Cells:         cells,
	}
}

// secondValue resolves the second run's value for a pair taken from the
// first run's grid shape. Pairs inside the second grid read the cell; pairs
// outside it degrade the same way a cell would: the metric's global
// average, then 0.
func secondValue(second runSnapshot, rows map[string]int, cols map[evaluation.MetricID]int, qt string, id evaluation.MetricID) float64 {
	if i, ok := rows[qt]; ok {
		if j, ok := cols[id]; ok {
			return second.grid.Cells[i][j]
		}
	}
	if summary, ok := second.stats.MetricsSummary[id]; ok {
		return summary.AverageScore
	}
	return 0
}

func buildTimeSeries(snaps []runSnapshot) *TimeSeriesView {
	if len(snaps) < 2 {
		return nil
	}
	for _, snap := range snaps {
		if snap.run.Timestamp.IsZero() {
			return nil
		}
	}

	ordered := make([]runSnapshot, len(snaps))
	copy(ordered, snaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].run.Timestamp.Before(ordered[j].run.Timestamp)
	})

	points := make([]TimePoint, len(ordered))
	for i, snap := range ordered {
		points[i] = TimePoint{RunID: snap.id, Timestamp: snap.run.Timestamp}
	}

	// Series follow the current run's goals; other runs only contribute
	// scores where their goal names match.
	current := snaps[0]
	series := make([]GoalSeries, 0, len(current.stats.Goals))
	for _, goal := range current.stats.Goals {
		scores := make([]float64, len(ordered))
		for i, snap := range ordered {
			for _, g := range snap.stats.Goals {
				if g.Name == goal.Name {
					scores[i] = g.Score
					break
				}
			}
		}
		series = append(series, GoalSeries{Goal: goal.Name, Scores: scores})
	}
	return &TimeSeriesView{Points: points, Series: series}
}
