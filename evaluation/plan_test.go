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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const planYAML = `
goals:
  - name: retrieval quality
    weight: 2
    questions:
      - text: Does the retriever surface relevant passages?
        metrics:
          context_precision: 1
          context_recall: 0.5
      - text: Is the retrieved context diverse?
        weight: 0
        metrics:
          semantic_diversity: 1
  - name: generation quality
    questions:
      - text: Is the answer faithful to the context?
        weight: 3
        metrics:
          faithfulness: 2
test_case_generation:
  num_cases: 24
`

func TestParsePlan(t *testing.T) {
	t.Parallel()

	got, err := ParsePlan([]byte(planYAML))
	if err != nil {
		t.Fatalf("ParsePlan() error = %v", err)
	}

	want := &Plan{
		Goals: []PlanGoal{
			{
				Name:   "retrieval quality",
				Weight: 2,
				Questions: []PlanQuestion{
					{
						Text:   "Does the retriever surface relevant passages?",
						Weight: 1,
						Metrics: map[MetricID]float64{
							MetricContextPrecision: 1,
							MetricContextRecall:    0.5,
						},
					},
					{
						Text:   "Is the retrieved context diverse?",
						Weight: 0,
						Metrics: map[MetricID]float64{
							MetricSemanticDiversity: 1,
						},
					},
				},
			},
			{
				Name:   "generation quality",
				Weight: 1,
				Questions: []PlanQuestion{
					{
						Text:   "Is the answer faithful to the context?",
						Weight: 3,
						Metrics: map[MetricID]float64{
							MetricFaithfulness: 2,
						},
					},
				},
			},
		},
		TestCaseGeneration: map[string]any{"num_cases": 24},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePlan() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlanInvalidYAML(t *testing.T) {
	t.Parallel()

	if _, err := ParsePlan([]byte("goals: [")); err == nil {
		t.Fatal("ParsePlan() error = nil, want parse error")
	}
}

func TestLoadPlan(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(planYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() error = %v", err)
	}
	if len(plan.Goals) != 2 {
		t.Errorf("len(Goals) = %d, want 2", len(plan.Goals))
	}

	if _, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadPlan() error = nil, want read error")
	}
}

func TestPlanValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Plan {
		return &Plan{
			Goals: []PlanGoal{
				{
					Name:   "g",
					Weight: 1,
					Questions: []PlanQuestion{
						{Text: "q", Weight: 1, Metrics: map[MetricID]float64{MetricFaithfulness: 1}},
					},
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Plan)
		wantErr bool
	}{
		{
			name:   "valid plan",
			mutate: func(*Plan) {},
		},
		{
			name:    "no goals",
			mutate:  func(p *Plan) { p.Goals = nil },
			wantErr: true,
		},
		{
			name:    "empty goal name",
			mutate:  func(p *Plan) { p.Goals[0].Name = "" },
			wantErr: true,
		},
		{
			name:    "negative goal weight",
			mutate:  func(p *Plan) { p.Goals[0].Weight = -1 },
			wantErr: true,
		},
		{
			name:    "empty question text",
			mutate:  func(p *Plan) { p.Goals[0].Questions[0].Text = "" },
			wantErr: true,
		},
		{
			name:    "negative question weight",
			mutate:  func(p *Plan) { p.Goals[0].Questions[0].Weight = -0.5 },
			wantErr: true,
		},
		{
			name: "negative metric weight",
			mutate: func(p *Plan) {
				p.Goals[0].Questions[0].Metrics[MetricFaithfulness] = -2
			},
			wantErr: true,
		},
		{
			name: "unknown metric id is allowed",
			mutate: func(p *Plan) {
				p.Goals[0].Questions[0].Metrics[MetricID("house_metric")] = 1
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			plan := valid()
			tc.mutate(plan)
			err := plan.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestPlanUnclassifiedMetrics(t *testing.T) {
	t.Parallel()

	plan := &Plan{
		Goals: []PlanGoal{
			{
				Name: "g1",
				Questions: []PlanQuestion{
					{Text: "q1", Metrics: map[MetricID]float64{
						MetricFaithfulness:     1,
						MetricID("zeta_score"): 1,
						MetricID("acme_score"): 1,
					}},
					{Text: "q2", Metrics: map[MetricID]float64{
						MetricID("zeta_score"): 2,
					}},
				},
			},
		},
	}

	want := []MetricID{"acme_score", "zeta_score"}
	if diff := cmp.Diff(want, plan.UnclassifiedMetrics()); diff != "" {
		t.Errorf("UnclassifiedMetrics() mismatch (-want +got):\n%s", diff)
	}
}
