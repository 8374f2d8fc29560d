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
	"encoding/json"
	"fmt"
	"time"
)

// EvaluationRun is one complete evaluation execution as materialized by the
// upstream scoring pipeline. The record is read-only once loaded; every
// derived structure in this package is recomputed from it on demand.
//
// ID and Timestamp are repository metadata: the stored payload carries only
// overall_score and goals, and the repository fills in identity when loading.
type EvaluationRun struct {
	ID        string    `json:"-"`
	Timestamp time.Time `json:"-"`

	// OverallScore is the weighted rollup computed upstream. The
	// aggregator copies it as-is and never recomputes it.
	OverallScore float64 `json:"overall_score"`

	Goals []Goal `json:"goals"`
}

// Goal is a weighted evaluation objective composed of questions.
// Goal names are unique within a run; ordering is insertion order from the
// source record and is preserved in all derived outputs.
type Goal struct {
	Name      string     `json:"name"`
	Score     float64    `json:"score"`
	Weight    float64    `json:"weight"`
	Questions []Question `json:"questions"`
}

// Question is one evaluation prompt grouping, composed of metric results.
type Question struct {
	Text    string   `json:"text"`
	Score   float64  `json:"score"`
	Weight  float64  `json:"weight"`
	Metrics []Metric `json:"metrics"`
}

// Metric is one scoring function's result for a question. IndividualScores
// carries the optional per-test-case detail; most aggregates work from Value
// and only the question-type views require the detail.
type Metric struct {
	ID     MetricID `json:"id"`
	Value  float64  `json:"value"`
	Weight float64  `json:"weight"`

	IndividualScores []IndividualScore `json:"individual_scores,omitempty"`
}

// IndividualScore is one metric's score for one specific test case. The
// records are sparse: not every metric is scored for every test case.
type IndividualScore struct {
	Query           string  `json:"query"`
	GeneratedAnswer string  `json:"generated_answer"`
	QuestionType    string  `json:"question_type"`
	Score           float64 `json:"score"`
}

// ScoredCase is one flattened IndividualScore tagged with the metric it
// belongs to. Flatten produces these in document order so that downstream
// positional alignment is deterministic.
type ScoredCase struct {
	MetricID     MetricID
	Query        string
	QuestionType string
	Score        float64
}

// Flatten walks the run in order and returns every IndividualScore entry
// tagged with its parent metric id. Runs without per-test-case detail yield
// an empty slice.
func (r *EvaluationRun) Flatten() []ScoredCase {
	var cases []ScoredCase
	for _, goal := range r.Goals {
		for _, question := range goal.Questions {
			for _, metric := range question.Metrics {
				for _, is := range metric.IndividualScores {
					cases = append(cases, ScoredCase{
						MetricID:     metric.ID,
						Query:        is.Query,
						QuestionType: is.QuestionType,
						Score:        is.Score,
					})
				}
			}
		}
	}
	return cases
}

// QuestionCount returns the total number of questions across all goals.
func (r *EvaluationRun) QuestionCount() int {
	n := 0
	for _, goal := range r.Goals {
		n += len(goal.Questions)
	}
	return n
}

// DecodeRun parses a stored run payload. The payload is the pipeline's
// serialized record (overall_score + goals); identity metadata is supplied
// by the caller.
func DecodeRun(data []byte, id string, timestamp time.Time) (*EvaluationRun, error) {
	var run EvaluationRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %q: %w", id, err)
	}
	run.ID = id
	run.Timestamp = timestamp
	return &run, nil
}
