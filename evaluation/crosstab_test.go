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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeCrossTab(t *testing.T) {
	t.Parallel()

	// The fixture is arranged so every link of the cell fallback chain is
	// hit somewhere in the grid:
	//
	//   (simple, faithfulness)        recorded pair performance (0.65)
	//   (complex, answer_relevance)   raw individual-score average (0.3)
	//   (*, context_precision)        metric global average (0.45)
	//   (simple, answer_relevance)    nothing recorded anywhere (0)
	stats := &Statistics{
		MetricsSummary: map[MetricID]MetricSummary{
			MetricFaithfulness:     {AverageScore: 0.5, Count: 2},
			MetricContextPrecision: {AverageScore: 0.45, Count: 1},
		},
		QuestionTypes: map[string]QuestionTypePerformance{
			"simple":  {Average: 0.7, Count: 2},
			"complex": {Average: 0.3, Count: 1},
		},
		MetricTypes: map[MetricID]map[string]MetricTypePerformance{
			MetricFaithfulness: {
				"simple": {Average: 0.65, Count: 2},
			},
		},
	}
	cases := []ScoredCase{
		{MetricID: MetricFaithfulness, Query: "q1", QuestionType: "simple", Score: 0.6},
		{MetricID: MetricFaithfulness, Query: "q2", QuestionType: "simple", Score: 0.8},
		{MetricID: MetricAnswerRelevance, Query: "q3", QuestionType: "complex", Score: 0.3},
	}

	want := &CrossTab{
		QuestionTypes: []string{"simple", "complex"},
		MetricIDs:     []MetricID{MetricFaithfulness, MetricAnswerRelevance, MetricContextPrecision},
		Cells: [][]float64{
			{0.65, 0, 0.45},
			{0.5, 0.3, 0.45},
		},
	}
	got := ComputeCrossTab(stats, cases)
	if diff := cmp.Diff(want, got, approxFloats); diff != "" {
		t.Errorf("ComputeCrossTab() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeCrossTabStatsOnlyAxes(t *testing.T) {
	t.Parallel()

	// Pairs known only to the aggregates (no per-test-case rows) still get
	// axis entries, appended in sorted order after the first-seen ones.
	stats := &Statistics{
		MetricsSummary: map[MetricID]MetricSummary{
			MetricBERTScore:    {AverageScore: 0.8},
			MetricFaithfulness: {AverageScore: 0.6},
		},
		QuestionTypes: map[string]QuestionTypePerformance{
			"situational": {Average: 0.5, Count: 1},
			"double":      {Average: 0.9, Count: 1},
		},
		MetricTypes: map[MetricID]map[string]MetricTypePerformance{},
	}

	got := ComputeCrossTab(stats, nil)
	wantTypes := []string{"double", "situational"}
	wantMetrics := []MetricID{MetricBERTScore, MetricFaithfulness}
	if diff := cmp.Diff(wantTypes, got.QuestionTypes); diff != "" {
		t.Errorf("QuestionTypes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantMetrics, got.MetricIDs); diff != "" {
		t.Errorf("MetricIDs mismatch (-want +got):\n%s", diff)
	}
	// Every cell falls through to the metric's global average.
	wantCells := [][]float64{{0.8, 0.6}, {0.8, 0.6}}
	if diff := cmp.Diff(wantCells, got.Cells, approxFloats); diff != "" {
		t.Errorf("Cells mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeCrossTabNormalizesRawTypes(t *testing.T) {
	t.Parallel()

	stats := &Statistics{
		MetricsSummary: map[MetricID]MetricSummary{},
		QuestionTypes:  map[string]QuestionTypePerformance{},
		MetricTypes:    map[MetricID]map[string]MetricTypePerformance{},
	}
	cases := []ScoredCase{
		{MetricID: MetricFaithfulness, Query: "q1", Score: 0.4},
		{MetricID: MetricFaithfulness, Query: "q2", Score: 0.6},
	}

	got := ComputeCrossTab(stats, cases)
	want := &CrossTab{
		QuestionTypes: []string{"unknown"},
		MetricIDs:     []MetricID{MetricFaithfulness},
		Cells:         [][]float64{{0.5}},
	}
	if diff := cmp.Diff(want, got, approxFloats); diff != "" {
		t.Errorf("ComputeCrossTab() mismatch (-want +got):\n%s", diff)
	}
}

func TestBandForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  ScoreBand
	}{
		{1, ScoreBandHigh},
		{0.8, ScoreBandHigh},
		{0.79, ScoreBandMediumHigh},
		{0.6, ScoreBandMediumHigh},
		{0.59, ScoreBandMedium},
		{0.4, ScoreBandMedium},
		{0.39, ScoreBandMediumLow},
		{0.2, ScoreBandMediumLow},
		{0.19, ScoreBandLow},
		{0, ScoreBandLow},
	}

	for _, tc := range tests {
		if got := BandForScore(tc.value); got != tc.want {
			t.Errorf("BandForScore(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
