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

// Package telemetry emits OpenTelemetry traces and log events for the
// analytics engine. Spans go to a local tracer provider and to the global
// one; the library never configures exporters itself, embedders register
// span processors or set the global providers.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/comparison"
)

// systemName is the instrumentation scope for every span and log record.
const systemName = "google.golang.org/rageval"

type tracerProviderHolder struct {
	tp trace.TracerProvider
}

type tracerProviderConfig struct {
	spanProcessors []sdktrace.SpanProcessor
	mu             *sync.RWMutex
}

var (
	once        sync.Once
	localTracer tracerProviderHolder
	limits      = sdktrace.SpanLimits{
		AttributeValueLengthLimit:   -1,
		AttributeCountLimit:         -1,
		EventCountLimit:             -1,
		LinkCountLimit:              -1,
		AttributePerEventCountLimit: -1,
		AttributePerLinkCountLimit:  -1,
	}
	localTracerConfig = tracerProviderConfig{
		spanProcessors: []sdktrace.SpanProcessor{},
		mu:             &sync.RWMutex{},
	}
)

// AddSpanProcessor adds a span processor to the local tracer config. Must
// be called before the first span is started; later additions are ignored.
func AddSpanProcessor(processor sdktrace.SpanProcessor) {
	localTracerConfig.mu.Lock()
	defer localTracerConfig.mu.Unlock()
	localTracerConfig.spanProcessors = append(localTracerConfig.spanProcessors, processor)
}

// RegisterTelemetry sets up the local tracer provider with every span
// processor registered so far. The local provider exists so embedders can
// capture analytics spans without touching the global tracer configuration.
func RegisterTelemetry() {
	once.Do(func() {
		traceProvider := sdktrace.NewTracerProvider(
			sdktrace.WithRawSpanLimits(limits),
		)
		localTracerConfig.mu.RLock()
		spanProcessors := localTracerConfig.spanProcessors
		localTracerConfig.mu.RUnlock()
		for _, processor := range spanProcessors {
			traceProvider.RegisterSpanProcessor(processor)
		}
		localTracer = tracerProviderHolder{tp: traceProvider}
	})
}

// getTracers returns the local tracer and the global one. If the global
// provider was never set, its spans are no-ops and only the local side
// records.
func getTracers() []trace.Tracer {
	if localTracer.tp == nil {
		RegisterTelemetry()
	}
	return []trace.Tracer{
		localTracer.tp.Tracer(systemName),
		otel.GetTracerProvider().Tracer(systemName),
	}
}

// StartTrace starts one span per tracer (local and global) under the given
// name. Callers pass the returned spans to one of the TraceX helpers, which
// attach attributes and end them.
func StartTrace(ctx context.Context, traceName string) []trace.Span {
	tracers := getTracers()
	spans := make([]trace.Span, len(tracers))
	for i, tracer := range tracers {
		_, span := tracer.Start(ctx, traceName)
		spans[i] = span
	}
	return spans
}

// TraceRunLoad fills the load_run span details and ends the spans.
func TraceRunLoad(spans []trace.Span, run *evaluation.EvaluationRun) {
	for _, span := range spans {
		attributes := []attribute.KeyValue{
			attribute.String("rageval.run_id", run.ID),
			attribute.Float64("rageval.overall_score", run.OverallScore),
			attribute.Int("rageval.goal_count", len(run.Goals)),
			attribute.Int("rageval.question_count", run.QuestionCount()),
		}
		span.SetAttributes(attributes...)
		span.End()
	}
}

// TraceComparison fills the compare_runs span details and ends the spans.
func TraceComparison(spans []trace.Span, views *comparison.Views) {
	for _, span := range spans {
		attributes := []attribute.KeyValue{
			attribute.String("rageval.current_run_id", views.RunIDs[0]),
			attribute.Int("rageval.run_count", len(views.RunIDs)),
			attribute.Bool("rageval.has_diff", views.Diff != nil),
			attribute.Bool("rageval.has_time_series", views.TimeSeries != nil),
		}
		span.SetAttributes(attributes...)
		span.End()
	}
}

// TraceError marks every span failed with the error and ends them. Used on
// the failure path where a TraceX helper would otherwise run.
func TraceError(spans []trace.Span, err error) {
	for _, span := range spans {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
	}
}
