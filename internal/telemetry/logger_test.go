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

package telemetry

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/comparison"
)

func TestLogRunLoaded(t *testing.T) {
	run := &evaluation.EvaluationRun{
		ID:           "eval_20250601_120000",
		OverallScore: 0.8,
		Goals: []evaluation.Goal{
			{
				Name:   "retrieval quality",
				Score:  0.8,
				Weight: 2,
				Questions: []evaluation.Question{
					{
						Text: "How is recall measured?",
						Metrics: []evaluation.Metric{
							{
								ID:    evaluation.MetricFaithfulness,
								Value: 0.8,
								IndividualScores: []evaluation.IndividualScore{
									{Query: "what is recall", QuestionType: "simple", Score: 0.7},
									{Query: "define recall", QuestionType: "simple", Score: 0.9},
									{Query: "what is recall", QuestionType: "simple", Score: 0.8},
								},
							},
						},
					},
				},
			},
		},
	}

	wantGoals := []any{
		map[string]any{
			"name":           "retrieval quality",
			"score":          0.8,
			"weight":         2.0,
			"question_count": int64(1),
		},
	}

	tests := []struct {
		name     string
		elide    bool
		wantBody map[string]any
	}{
		{
			name:  "QueriesElidedByDefault",
			elide: true,
			wantBody: map[string]any{
				"id":            "eval_20250601_120000",
				"overall_score": 0.8,
				"goals":         wantGoals,
				"queries":       "<elided>",
			},
		},
		{
			name:  "QueriesCapturedWhenEnabled",
			elide: false,
			wantBody: map[string]any{
				"id":            "eval_20250601_120000",
				"overall_score": 0.8,
				"goals":         wantGoals,
				"queries":       []any{"what is recall", "define recall"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exporter := setupTestLogger(t, tc.elide)

			LogRunLoaded(t.Context(), run)

			if len(exporter.records) != 1 {
				t.Fatalf("emitted %d records, want 1", len(exporter.records))
			}
			record := exporter.records[0]
			if record.EventName() != "rageval.run.loaded" {
				t.Errorf("event name = %q, want %q", record.EventName(), "rageval.run.loaded")
			}
			if diff := cmp.Diff(tc.wantBody, toGoValue(record.Body())); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogViewsBuilt(t *testing.T) {
	exporter := setupTestLogger(t, true)

	views := &comparison.Views{
		RunIDs: []string{"run-a", "run-b"},
		Diff:   &comparison.HeatmapDiff{},
	}
	LogViewsBuilt(t.Context(), views)

	if len(exporter.records) != 1 {
		t.Fatalf("emitted %d records, want 1", len(exporter.records))
	}
	record := exporter.records[0]
	if record.EventName() != "rageval.views.built" {
		t.Errorf("event name = %q, want %q", record.EventName(), "rageval.views.built")
	}

	want := map[string]any{
		"run_ids":     []any{"run-a", "run-b"},
		"diff":        true,
		"time_series": false,
	}
	if diff := cmp.Diff(want, toGoValue(record.Body())); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func setupTestLogger(t *testing.T, elided bool) *inMemoryExporter {
	t.Helper()

	exporter := &inMemoryExporter{}
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
	)
	originalLogger := logger
	logger = provider.Logger("test")
	t.Cleanup(func() {
		logger = originalLogger
	})

	original := elideQueryContent
	elideQueryContent = elided
	t.Cleanup(func() {
		elideQueryContent = original
	})
	return exporter
}

type inMemoryExporter struct {
	records []sdklog.Record
}

func (e *inMemoryExporter) Export(ctx context.Context, records []sdklog.Record) error {
	e.records = append(e.records, records...)
	return nil
}

func (e *inMemoryExporter) Shutdown(ctx context.Context) error   { return nil }
func (e *inMemoryExporter) ForceFlush(ctx context.Context) error { return nil }

// toGoValue converts a log.Value to plain Go values so cmp can diff them.
func toGoValue(v log.Value) any {
	switch v.Kind() {
	case log.KindBool:
		return v.AsBool()
	case log.KindFloat64:
		return v.AsFloat64()
	case log.KindInt64:
		return v.AsInt64()
	case log.KindString:
		return v.AsString()
	case log.KindBytes:
		return v.AsBytes()
	case log.KindSlice:
		var s []any
		for _, v := range v.AsSlice() {
			s = append(s, toGoValue(v))
		}
		return s
	case log.KindMap:
		m := make(map[string]any)
		for _, kv := range v.AsMap() {
			m[kv.Key] = toGoValue(kv.Value)
		}
		return m
	default:
		return nil
	}
}
