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

// Package config provides configs for the rageval CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI's environment-driven settings. Directory defaults
// match the layout the scoring pipeline writes next to its own checkout.
type Config struct {
	// ResultsDir is where the file backend looks for run files.
	ResultsDir string

	// QuestionsDir is where generated question sets are cached.
	QuestionsDir string

	// Storage names the repository backend: file, memory, or sqlite.
	Storage string

	// DBPath is the sqlite database file, used when Storage is sqlite or
	// as the import target.
	DBPath string

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string

	// CacheSize bounds the comparison session's run cache.
	CacheSize int
}

// LoadConfig reads the environment, after a best-effort .env load, and
// returns the parsed configs.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{
		ResultsDir:   envOr("RAGEVAL_RESULTS_DIR", "evaluation_results"),
		QuestionsDir: envOr("RAGEVAL_QUESTIONS_DIR", "questions"),
		Storage:      envOr("RAGEVAL_STORAGE", "file"),
		DBPath:       envOr("RAGEVAL_DB_PATH", "rageval.db"),
		LogLevel:     envOr("RAGEVAL_LOG_LEVEL", "info"),
		CacheSize:    16,
	}

	if raw, ok := os.LookupEnv("RAGEVAL_CACHE_SIZE"); ok {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RAGEVAL_CACHE_SIZE %q: %w", raw, err)
		}
		config.CacheSize = size
	}

	return config, nil
}

// RepositoryTarget returns the backend-specific open target for the
// configured storage.
func (c *Config) RepositoryTarget() string {
	switch c.Storage {
	case "sqlite":
		return c.DBPath
	case "memory":
		return ""
	default:
		return c.ResultsDir
	}
}

func envOr(name, fallback string) string {
	if val, ok := os.LookupEnv(name); ok && val != "" {
		return val
	}
	return fallback
}
