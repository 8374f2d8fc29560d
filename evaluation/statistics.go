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

import "math"

// unknownQuestionType labels individual scores that carry no question type.
const unknownQuestionType = "unknown"

// Statistics is the per-run summary derived from one EvaluationRun.
// All collections may be empty; empty means "not available", never zero
// performance.
type Statistics struct {
	// OverallScore is copied from the run, not recomputed.
	OverallScore float64 `json:"overall_score"`

	// Goals holds one entry per goal, in run order.
	Goals []GoalStatistic `json:"goals"`

	// MetricsSummary maps every metric id observed in the run to its
	// per-question summary.
	MetricsSummary map[MetricID]MetricSummary `json:"metrics_summary"`

	// QuestionTypes maps each question type observed in individual-score
	// data to its performance. Empty when the run has no per-test-case
	// detail anywhere.
	QuestionTypes map[string]QuestionTypePerformance `json:"question_types_performance"`

	// MetricTypes maps (metric id, question type) pairs observed in
	// individual-score data to their performance.
	MetricTypes map[MetricID]map[string]MetricTypePerformance `json:"metric_question_type_performance"`
}

// GoalStatistic is the per-goal slice of a Statistics value.
type GoalStatistic struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
	QuestionCount int     `json:"questions_count"`
}

// MetricSummary summarizes one metric's per-question values across a run.
// The unit of aggregation is the per-question Metric.Value, not the
// individual test-case scores.
type MetricSummary struct {
	AverageScore float64 `json:"average_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
	Count        int     `json:"count"`

	// StdDev is the population standard deviation, 0 when fewer than two
	// questions contribute.
	StdDev float64 `json:"std_dev"`
}

// QuestionTypePerformance summarizes individual scores tagged with one
// question type.
type QuestionTypePerformance struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// MetricTypePerformance summarizes one (metric, question type) pair.
type MetricTypePerformance struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ComputeStatistics reduces one run into its Statistics. A run with zero
// goals yields the overall score as given and empty collections; absent
// individual-score detail leaves the question-type views empty.
func ComputeStatistics(run *EvaluationRun) *Statistics {
	stats := &Statistics{
		OverallScore:   run.OverallScore,
		Goals:          make([]GoalStatistic, 0, len(run.Goals)),
		MetricsSummary: make(map[MetricID]MetricSummary),
		QuestionTypes:  make(map[string]QuestionTypePerformance),
		MetricTypes:    make(map[MetricID]map[string]MetricTypePerformance),
	}

	metricValues := make(map[MetricID][]float64)
	typeScores := make(map[string][]float64)
	pairScores := make(map[MetricID]map[string][]float64)

	for _, goal := range run.Goals {
		stats.Goals = append(stats.Goals, GoalStatistic{
			Name:          goal.Name,
			Score:         goal.Score,
			Weight:        goal.Weight,
			QuestionCount: len(goal.Questions),
		})

		for _, question := range goal.Questions {
			for _, metric := range question.Metrics {
				metricValues[metric.ID] = append(metricValues[metric.ID], metric.Value)

				for _, is := range metric.IndividualScores {
					qt := normalizeQuestionType(is.QuestionType)
					typeScores[qt] = append(typeScores[qt], is.Score)

					if pairScores[metric.ID] == nil {
						pairScores[metric.ID] = make(map[string][]float64)
					}
					pairScores[metric.ID][qt] = append(pairScores[metric.ID][qt], is.Score)
				}
			}
		}
	}

	for id, values := range metricValues {
		stats.MetricsSummary[id] = summarizeMetric(values)
	}

	for qt, scores := range typeScores {
		lo, hi := minMax(scores)
		stats.QuestionTypes[qt] = QuestionTypePerformance{
			Average: mean(scores),
			Count:   len(scores),
			Min:     lo,
			Max:     hi,
		}
	}

	for id, types := range pairScores {
		stats.MetricTypes[id] = make(map[string]MetricTypePerformance, len(types))
		for qt, scores := range types {
			stats.MetricTypes[id][qt] = MetricTypePerformance{
				Average: mean(scores),
				Count:   len(scores),
			}
		}
	}

	return stats
}

func summarizeMetric(values []float64) MetricSummary {
	lo, hi := minMax(values)
	avg := mean(values)

	stdDev := 0.0
	if len(values) > 1 {
		stdDev = populationStdDev(values, avg)
	}

	return MetricSummary{
		AverageScore: avg,
		MinScore:     lo,
		MaxScore:     hi,
		Count:        len(values),
		StdDev:       stdDev,
	}
}

func normalizeQuestionType(qt string) string {
	if qt == "" {
		return unknownQuestionType
	}
	return qt
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minMax(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func populationStdDev(xs []float64, mu float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	variance := 0.0
	for _, x := range xs {
		d := x - mu
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}
