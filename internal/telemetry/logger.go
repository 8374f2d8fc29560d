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
	"os"
	"strings"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	semconv "go.opentelemetry.io/otel/semconv/v1.36.0"

	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/comparison"
	"google.golang.org/rageval/internal/version"
)

// Query text is not logged by default. Set the following env variable to
// include the evaluated queries in run-loaded events.
// OTEL_INSTRUMENTATION_RAGEVAL_CAPTURE_QUERY_CONTENT=true
var elideQueryContent = !isEnvVarTrue("OTEL_INSTRUMENTATION_RAGEVAL_CAPTURE_QUERY_CONTENT")

const elidedContent = "<elided>"

var logger = global.GetLoggerProvider().Logger(
	systemName,
	log.WithSchemaURL(semconv.SchemaURL),
	log.WithInstrumentationVersion(version.Version),
)

// LogRunLoaded emits one rageval.run.loaded event describing the run that
// was just read from a repository: identity, the per-goal scores, and the
// evaluated queries (elided unless capture is enabled).
func LogRunLoaded(ctx context.Context, run *evaluation.EvaluationRun) {
	record := log.Record{}
	record.SetEventName("rageval.run.loaded")
	record.SetBody(log.MapValue(
		log.String("id", run.ID),
		log.Float64("overall_score", run.OverallScore),
		log.KeyValue{Key: "goals", Value: goalsToLogValue(run.Goals)},
		log.KeyValue{Key: "queries", Value: queriesToLogValue(run)},
	))
	logger.Emit(ctx, record)
}

// LogViewsBuilt emits one rageval.views.built event after a comparison
// selection produced its views.
func LogViewsBuilt(ctx context.Context, views *comparison.Views) {
	ids := make([]log.Value, 0, len(views.RunIDs))
	for _, id := range views.RunIDs {
		ids = append(ids, log.StringValue(id))
	}

	record := log.Record{}
	record.SetEventName("rageval.views.built")
	record.SetBody(log.MapValue(
		log.KeyValue{Key: "run_ids", Value: log.SliceValue(ids...)},
		log.Bool("diff", views.Diff != nil),
		log.Bool("time_series", views.TimeSeries != nil),
	))
	logger.Emit(ctx, record)
}

func goalsToLogValue(goals []evaluation.Goal) log.Value {
	values := make([]log.Value, 0, len(goals))
	for _, goal := range goals {
		values = append(values, log.MapValue(
			log.String("name", goal.Name),
			log.Float64("score", goal.Score),
			log.Float64("weight", goal.Weight),
			log.Int("question_count", len(goal.Questions)),
		))
	}
	return log.SliceValue(values...)
}

// queriesToLogValue lists the distinct query texts evaluated in the run, in
// first-seen order. Elided by default: queries are user content.
func queriesToLogValue(run *evaluation.EvaluationRun) log.Value {
	if elideQueryContent {
		return log.StringValue(elidedContent)
	}

	var queries []any
	seen := make(map[string]bool)
	for _, c := range run.Flatten() {
		if !seen[c.Query] {
			seen[c.Query] = true
			queries = append(queries, c.Query)
		}
	}
	return toLogValue(queries)
}

func isEnvVarTrue(name string) bool {
	val, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1"
}
