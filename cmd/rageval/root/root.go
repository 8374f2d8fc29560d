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

// Package root holds the rageval root command and the helpers its verb
// packages share. Verb packages attach themselves in their init functions;
// importing them is what populates the command tree.
package root

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/config"
	"google.golang.org/rageval/evaluation"
	"google.golang.org/rageval/evaluation/storage"
	"google.golang.org/rageval/internal/telemetry"
	"google.golang.org/rageval/internal/version"
)

var (
	cfg *config.Config

	registerOnce sync.Once
	registerErr  error
)

// RootCmd is the rageval command every verb package hangs off.
var RootCmd = &cobra.Command{
	Use:   "rageval",
	Short: "Analytics and comparison for RAG evaluation results",
	Long: `rageval reads the JSON records a RAG evaluation pipeline writes and
derives statistics, correlations, heatmaps, and cross-run comparison views.
All output is JSON on stdout; rendering is left to whatever consumes it.`,
	Version:      version.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid RAGEVAL_LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zerolog.SetGlobalLevel(level)

		registerOnce.Do(func() {
			registerErr = storage.RegisterDefaultBackends()
		})
		return registerErr
	},
}

// Execute runs the root command. Exits nonzero on error; cobra has already
// printed it.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Config returns the loaded CLI configuration. Only valid inside a RunE,
// after the root PersistentPreRunE has run.
func Config() *config.Config {
	return cfg
}

// OpenRepository opens the run repository named by the configuration.
func OpenRepository() (evaluation.Repository, error) {
	return storage.Open(cfg.Storage, cfg.RepositoryTarget())
}

// LoadRun fetches one run through the configured repository, emitting the
// load_run trace and the run-loaded log event on the way.
func LoadRun(ctx context.Context, id string) (*evaluation.EvaluationRun, error) {
	repo, err := OpenRepository()
	if err != nil {
		return nil, err
	}

	spans := telemetry.StartTrace(ctx, "load_run")
	run, err := repo.Get(ctx, id)
	if err != nil {
		telemetry.TraceError(spans, err)
		return nil, err
	}
	telemetry.TraceRunLoad(spans, run)
	telemetry.LogRunLoaded(ctx, run)
	return run, nil
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
