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
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/comparison"
)

// TestTraces drives the whole span surface against one local exporter. The
// local tracer provider is process-wide and locks its processors on first
// use, so the subtests share it and run sequentially.
func TestTraces(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	AddSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter))
	RegisterTelemetry()

	run := &evaluation.EvaluationRun{
		ID:           "eval_20250601_120000",
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		OverallScore: 0.75,
		Goals: []evaluation.Goal{
			{
				Name:  "retrieval quality",
				Score: 0.75,
				Questions: []evaluation.Question{
					{Text: "How is recall measured?"},
					{Text: "What corpus is indexed?"},
				},
			},
		},
	}

	t.Run("RunLoad", func(t *testing.T) {
		exporter.Reset()

		TraceRunLoad(StartTrace(t.Context(), "load_run"), run)

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}
		if spans[0].Name != "load_run" {
			t.Errorf("span name = %q, want %q", spans[0].Name, "load_run")
		}

		attrs := attributesToMap(spans[0].Attributes)
		want := map[attribute.Key]string{
			"rageval.run_id":         "eval_20250601_120000",
			"rageval.overall_score":  "0.75",
			"rageval.goal_count":     "1",
			"rageval.question_count": "2",
		}
		for k, v := range want {
			if attrs[k] != v {
				t.Errorf("attribute %q = %q, want %q", k, attrs[k], v)
			}
		}
	})

	t.Run("Comparison", func(t *testing.T) {
		exporter.Reset()

		views := &comparison.Views{
			RunIDs: []string{"run-a", "run-b"},
			Diff:   &comparison.HeatmapDiff{},
		}
		TraceComparison(StartTrace(t.Context(), "compare_runs"), views)

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}

		attrs := attributesToMap(spans[0].Attributes)
		want := map[attribute.Key]string{
			"rageval.current_run_id":  "run-a",
			"rageval.run_count":       "2",
			"rageval.has_diff":        "true",
			"rageval.has_time_series": "false",
		}
		for k, v := range want {
			if attrs[k] != v {
				t.Errorf("attribute %q = %q, want %q", k, attrs[k], v)
			}
		}
	})

	t.Run("Error", func(t *testing.T) {
		exporter.Reset()

		errLoad := errors.New("repository unavailable")
		TraceError(StartTrace(t.Context(), "load_run"), errLoad)

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}
		if spans[0].Status.Code != codes.Error {
			t.Errorf("status code = %v, want %v", spans[0].Status.Code, codes.Error)
		}
		if spans[0].Status.Description != errLoad.Error() {
			t.Errorf("status description = %q, want %q", spans[0].Status.Description, errLoad.Error())
		}
	})
}

func attributesToMap(attrs []attribute.KeyValue) map[attribute.Key]string {
	m := make(map[attribute.Key]string, len(attrs))
	for _, attr := range attrs {
		m[attr.Key] = attr.Value.Emit()
	}
	return m
}
