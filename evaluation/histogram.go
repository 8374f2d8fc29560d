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

// ScoreHistogram buckets per-test-case mean scores into five fixed bins.
// Percentages sum to 100 whenever at least one test case exists and are all
// 0 when none do.
type ScoreHistogram struct {
	Bins       []HistogramBin `json:"bins"`
	TotalCases int            `json:"total_cases"`
}

// HistogramBin is one bucket of the score histogram. Every bin is half-open
// [Lower, Upper) except the last, which includes Upper so a perfect 1.0
// lands in it.
type HistogramBin struct {
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type testCaseKey struct {
	query        string
	questionType string
}

// ComputeScoreHistogram groups a run's flattened individual scores by
// (query, question type), averages each group across whichever metrics
// scored it, and buckets the per-test-case means.
func ComputeScoreHistogram(cases []ScoredCase) *ScoreHistogram {
	groups := make(map[testCaseKey][]float64)
	for _, c := range cases {
		key := testCaseKey{
			query:        c.Query,
			questionType: normalizeQuestionType(c.QuestionType),
		}
		groups[key] = append(groups[key], c.Score)
	}

	bins := make([]HistogramBin, 5)
	for i := range bins {
		bins[i].Lower = float64(i) * 0.2
		bins[i].Upper = float64(i+1) * 0.2
	}

	for _, scores := range groups {
		bins[binIndex(mean(scores))].Count++
	}

	total := len(groups)
	if total > 0 {
		for i := range bins {
			bins[i].Percent = float64(bins[i].Count) / float64(total) * 100
		}
	}

	return &ScoreHistogram{Bins: bins, TotalCases: total}
}

func binIndex(v float64) int {
	switch {
	case v < 0.2:
		return 0
	case v < 0.4:
		return 1
	case v < 0.6:
		return 2
	case v < 0.8:
		return 3
	default:
		return 4
	}
}
