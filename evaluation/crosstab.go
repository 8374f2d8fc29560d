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

package evaluation

import "sort"

// CrossTab is a question-type x metric grid of average scores in [0,1].
// Rows follow QuestionTypes, columns follow MetricIDs; Cells[i][j] is the
// value for (QuestionTypes[i], MetricIDs[j]).
type CrossTab struct {
	QuestionTypes []string    `json:"question_types"`
	MetricIDs     []MetricID  `json:"metric_ids"`
	Cells         [][]float64 `json:"cells"`
}

// ComputeCrossTab builds the metric x question-type grid for a run. Each
// cell resolves through a fallback chain: the pair's recorded performance in
// stats, then the average of raw individual scores matching the pair, then
// the metric's global average score, then 0.
//
// Axis order is first-seen order over the flattened scores; metrics and
// question types known only to stats (no per-test-case detail) are appended
// in sorted order so the grid stays deterministic.
func ComputeCrossTab(stats *Statistics, cases []ScoredCase) *CrossTab {
	types := collectQuestionTypes(stats, cases)
	metrics := collectMetricIDs(stats, cases)

	cells := make([][]float64, len(types))
	for i, qt := range types {
		cells[i] = make([]float64, len(metrics))
		for j, id := range metrics {
			cells[i][j] = cellValue(stats, cases, qt, id)
		}
	}

	return &CrossTab{
		QuestionTypes: types,
		MetricIDs:     metrics,
		Cells:         cells,
	}
}

func cellValue(stats *Statistics, cases []ScoredCase, qt string, id MetricID) float64 {
	if pair, ok := stats.MetricTypes[id][qt]; ok {
		return pair.Average
	}

	var matching []float64
	for _, c := range cases {
		if c.MetricID == id && normalizeQuestionType(c.QuestionType) == qt {
			matching = append(matching, c.Score)
		}
	}
	if len(matching) > 0 {
		return mean(matching)
	}

	if summary, ok := stats.MetricsSummary[id]; ok {
		return summary.AverageScore
	}
	return 0
}

func collectQuestionTypes(stats *Statistics, cases []ScoredCase) []string {
	var order []string
	seen := make(map[string]bool)
	for _, c := range cases {
		qt := normalizeQuestionType(c.QuestionType)
		if !seen[qt] {
			seen[qt] = true
			order = append(order, qt)
		}
	}

	var rest []string
	for qt := range stats.QuestionTypes {
		if !seen[qt] {
			rest = append(rest, qt)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func collectMetricIDs(stats *Statistics, cases []ScoredCase) []MetricID {
	var order []MetricID
	seen := make(map[MetricID]bool)
	for _, c := range cases {
		if !seen[c.MetricID] {
			seen[c.MetricID] = true
			order = append(order, c.MetricID)
		}
	}

	var rest []MetricID
	for id := range stats.MetricsSummary {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}

// ScoreBand classifies a cell value for display.
type ScoreBand string

const (
	ScoreBandHigh       ScoreBand = "high"
	ScoreBandMediumHigh ScoreBand = "medium-high"
	ScoreBandMedium     ScoreBand = "medium"
	ScoreBandMediumLow  ScoreBand = "medium-low"
	ScoreBandLow        ScoreBand = "low"
)

// BandForScore maps a [0,1] value onto its display band. The thresholds are
// a contract with the display layer: >=0.8 high, >=0.6 medium-high, >=0.4
// medium, >=0.2 medium-low, else low.
func BandForScore(value float64) ScoreBand {
	switch {
	case value >= 0.8:
		return ScoreBandHigh
	case value >= 0.6:
		return ScoreBandMediumHigh
	case value >= 0.4:
		return ScoreBandMedium
	case value >= 0.2:
		return ScoreBandMediumLow
	default:
		return ScoreBandLow
	}
}
