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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeScoreHistogram(t *testing.T) {
	t.Parallel()

	// q1/simple is scored by two metrics and must be averaged into a single
	// test case; q1/complex shares the query but not the type, so it stays
	// its own case.
	cases := []ScoredCase{
		{MetricID: MetricFaithfulness, Query: "q1", QuestionType: "simple", Score: 0.9},
		{MetricID: MetricAnswerRelevance, Query: "q1", QuestionType: "simple", Score: 0.7},
		{MetricID: MetricFaithfulness, Query: "q2", QuestionType: "complex", Score: 0.3},
		{MetricID: MetricFaithfulness, Query: "q1", QuestionType: "complex", Score: 0.5},
	}

	got := ComputeScoreHistogram(cases)
	want := &ScoreHistogram{
		TotalCases: 3,
		Bins: []HistogramBin{
			{Lower: 0, Upper: 0.2},
			{Lower: 0.2, Upper: 0.4, Count: 1, Percent: 100.0 / 3},
			{Lower: 0.4, Upper: 0.6, Count: 1, Percent: 100.0 / 3},
			{Lower: 0.6, Upper: 0.8},
			{Lower: 0.8, Upper: 1, Count: 1, Percent: 100.0 / 3},
		},
	}
	if diff := cmp.Diff(want, got, approxFloats); diff != "" {
		t.Errorf("ComputeScoreHistogram() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeScoreHistogramBinBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score   float64
		wantBin int
	}{
		{0, 0},
		{0.19, 0},
		{0.2, 1},
		{0.4, 2},
		{0.6, 3},
		{0.79, 3},
		{0.8, 4},
		{1, 4},
	}

	for _, tc := range tests {
		got := ComputeScoreHistogram([]ScoredCase{
			{MetricID: MetricFaithfulness, Query: "q", QuestionType: "simple", Score: tc.score},
		})
		for i, bin := range got.Bins {
			wantCount := 0
			if i == tc.wantBin {
				wantCount = 1
			}
			if bin.Count != wantCount {
				t.Errorf("score %v: bin %d count = %d, want %d", tc.score, i, bin.Count, wantCount)
			}
		}
	}
}

func TestComputeScoreHistogramEmpty(t *testing.T) {
	t.Parallel()

	got := ComputeScoreHistogram(nil)
	if got.TotalCases != 0 {
		t.Errorf("TotalCases = %d, want 0", got.TotalCases)
	}
	if len(got.Bins) != 5 {
		t.Fatalf("len(Bins) = %d, want 5", len(got.Bins))
	}
	for i, bin := range got.Bins {
		if bin.Count != 0 || bin.Percent != 0 {
			t.Errorf("Bins[%d] = %+v, want zero count and percent", i, bin)
		}
	}
}

func TestComputeScoreHistogramPercentagesSumTo100(t *testing.T) {
	t.Parallel()

	var cases []ScoredCase
	for i, score := range []float64{0.05, 0.15, 0.33, 0.47, 0.52, 0.68, 0.81, 0.99} {
		cases = append(cases, ScoredCase{
			MetricID:     MetricFaithfulness,
			Query:        string(rune('a' + i)),
			QuestionType: "simple",
			Score:        score,
		})
	}

	got := ComputeScoreHistogram(cases)
	var sum float64
	for _, bin := range got.Bins {
		sum += bin.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("sum of bin percentages = %v, want 100", sum)
	}
}
