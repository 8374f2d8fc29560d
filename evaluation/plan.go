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
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Plan is the goal/question/metric weighting an evaluation run is scored
// against. Plans are authored as YAML and consumed by the upstream pipeline;
// this package only loads and validates them.
type Plan struct {
	Goals []PlanGoal `json:"goals"`

	// TestCaseGeneration carries the upstream question generator's
	// settings untouched.
	TestCaseGeneration map[string]any `json:"test_case_generation,omitempty"`
}

// PlanGoal is one weighted objective of a plan.
type PlanGoal struct {
	Name      string         `json:"name"`
	Weight    float64        `json:"weight"`
	Questions []PlanQuestion `json:"questions"`
}

// PlanQuestion is one evaluation prompt with its metric weighting.
type PlanQuestion struct {
	Text    string               `json:"text"`
	Weight  float64              `json:"weight"`
	Metrics map[MetricID]float64 `json:"metrics"`
}

// Intermediate decode targets: weights are pointers so an absent weight can
// default to 1 while an explicit 0 survives.
type rawPlan struct {
	Goals              []rawPlanGoal  `json:"goals"`
	TestCaseGeneration map[string]any `json:"test_case_generation"`
}

type rawPlanGoal struct {
	Name      string            `json:"name"`
	Weight    *float64          `json:"weight"`
	Questions []rawPlanQuestion `json:"questions"`
}

type rawPlanQuestion struct {
	Text    string             `json:"text"`
	Weight  *float64           `json:"weight"`
	Metrics map[string]float64 `json:"metrics"`
}

// LoadPlan reads and decodes a YAML evaluation plan. Absent goal and
// question weights default to 1. The decode is weakly typed so integer
// weights in hand-written YAML are accepted.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML evaluation plan from raw bytes.
func ParsePlan(data []byte) (*Plan, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan YAML: %w", err)
	}

	var raw rawPlan
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build plan decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}

	plan := &Plan{
		Goals:              make([]PlanGoal, 0, len(raw.Goals)),
		TestCaseGeneration: raw.TestCaseGeneration,
	}
	for _, g := range raw.Goals {
		goal := PlanGoal{
			Name:      g.Name,
			Weight:    weightOrDefault(g.Weight),
			Questions: make([]PlanQuestion, 0, len(g.Questions)),
		}
		for _, q := range g.Questions {
			question := PlanQuestion{
				Text:    q.Text,
				Weight:  weightOrDefault(q.Weight),
				Metrics: make(map[MetricID]float64, len(q.Metrics)),
			}
			for id, w := range q.Metrics {
				question.Metrics[MetricID(id)] = w
			}
			goal.Questions = append(goal.Questions, question)
		}
		plan.Goals = append(plan.Goals, goal)
	}
	return plan, nil
}

func weightOrDefault(w *float64) float64 {
	if w == nil {
		return 1
	}
	return *w
}

// Validate checks the structural rules a plan must satisfy: at least one
// goal, non-empty goal names and question texts, and non-negative weights.
// Metric ids outside the vocabulary are not an error; see
// UnclassifiedMetrics.
func (p *Plan) Validate() error {
	if len(p.Goals) == 0 {
		return fmt.Errorf("%w: plan has no goals", ErrInvalidInput)
	}
	for i, goal := range p.Goals {
		if goal.Name == "" {
			return fmt.Errorf("%w: goal %d has no name", ErrInvalidInput, i)
		}
		if goal.Weight < 0 {
			return fmt.Errorf("%w: goal %q has negative weight", ErrInvalidInput, goal.Name)
		}
		for j, question := range goal.Questions {
			if question.Text == "" {
				return fmt.Errorf("%w: goal %q question %d has no text", ErrInvalidInput, goal.Name, j)
			}
			if question.Weight < 0 {
				return fmt.Errorf("%w: goal %q question %d has negative weight", ErrInvalidInput, goal.Name, j)
			}
			for id, w := range question.Metrics {
				if w < 0 {
					return fmt.Errorf("%w: metric %q has negative weight", ErrInvalidInput, id)
				}
			}
		}
	}
	return nil
}

// UnclassifiedMetrics returns the metric ids referenced by the plan that
// fall outside the fixed vocabulary, sorted and deduplicated. Such ids flow
// through the analytics but belong to no category average.
func (p *Plan) UnclassifiedMetrics() []MetricID {
	seen := make(map[MetricID]bool)
	var out []MetricID
	for _, goal := range p.Goals {
		for _, question := range goal.Questions {
			for id := range question.Metrics {
				if id.Category() == CategoryUnclassified && !seen[id] {
					seen[id] = true
					out = append(out, id)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
