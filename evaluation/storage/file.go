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

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"google.golang.org/rageval/evaluation"
)

const (
	runFileExt      = ".json"
	runFilePrefix   = "eval_"
	timestampLayout = "20060102_150405"
)

// FileRepository stores evaluation runs as JSON files in a single results
// directory, one file per run:
//
//	<dir>/
//	  eval_20250602_150405.json
//	  eval_20250603_091200.json
//
// This is the layout the scoring pipeline writes, so pointing a
// FileRepository at a pipeline output directory requires no import step.
type FileRepository struct {
	mu  sync.RWMutex
	dir string

	// resolved is non-nil in strict mode and rejects payloads that do not
	// match the run schema before they are decoded.
	resolved *jsonschema.Resolved
}

type fileOptions struct {
	strict bool
}

// FileOption configures a FileRepository.
type FileOption func(*fileOptions)

// WithStrictDecoding makes Get validate payloads against the run schema
// instead of accepting whatever json.Unmarshal tolerates. Foreign files in a
// shared results directory then fail loudly rather than decode to zero
// values.
func WithStrictDecoding() FileOption {
	return func(o *fileOptions) { o.strict = true }
}

// NewFileRepository creates a file-backed run repository rooted at dir,
// creating the directory if needed.
func NewFileRepository(dir string, opts ...FileOption) (*FileRepository, error) {
	var options fileOptions
	for _, opt := range opts {
		opt(&options)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	f := &FileRepository{dir: dir}
	if options.strict {
		resolved, err := runSchema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve run schema: %w", err)
		}
		f.resolved = resolved
	}
	return f, nil
}

// List returns metadata for every run file, newest first. Entries that are
// not .json files are ignored; the files themselves are not parsed here, so
// a malformed run still shows up in the listing and only fails on Get.
func (f *FileRepository) List(ctx context.Context) ([]evaluation.RunInfo, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []evaluation.RunInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	infos := make([]evaluation.RunInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != runFileExt {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		infos = append(infos, evaluation.RunInfo{
			ID:        strings.TrimSuffix(entry.Name(), runFileExt),
			Filename:  entry.Name(),
			Timestamp: runTimestamp(entry.Name(), fi.ModTime()),
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// Get retrieves one run by id.
func (f *FileRepository) Get(ctx context.Context, id string) (*evaluation.EvaluationRun, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(id)
}

// Statistics derives the per-run aggregates on demand.
func (f *FileRepository) Statistics(ctx context.Context, id string) (*evaluation.Statistics, error) {
	run, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return evaluation.ComputeStatistics(run), nil
}

// Save writes the run to <dir>/<id>.json, overwriting any previous record.
// A missing ID is assigned from the run's timestamp using the pipeline's
// eval_YYYYMMDD_HHMMSS convention; a zero timestamp is set to now. Both
// assignments are written back to the caller's run.
func (f *FileRepository) Save(ctx context.Context, run *evaluation.EvaluationRun) error {
	if run == nil {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	if run.ID == "" {
		run.ID = runFilePrefix + run.Timestamp.Format(timestampLayout)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if err := os.WriteFile(f.path(run.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// Delete removes a stored run.
func (f *FileRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(id)); err != nil {
		if os.IsNotExist(err) {
			return evaluation.ErrNotFound
		}
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	return nil
}

func (f *FileRepository) path(id string) string {
	return filepath.Join(f.dir, id+runFileExt)
}

func (f *FileRepository) read(id string) (*evaluation.EvaluationRun, error) {
	if id == "" {
		return nil, evaluation.ErrInvalidInput
	}

	path := f.path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	if f.resolved != nil {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run %q: %w", id, err)
		}
		if err := f.resolved.Validate(decoded); err != nil {
			return nil, fmt.Errorf("%w: run %q: %v", evaluation.ErrInvalidInput, id, err)
		}
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat run file: %w", err)
	}
	return evaluation.DecodeRun(data, id, runTimestamp(filepath.Base(path), fi.ModTime()))
}

// runTimestamp recovers a run's wall-clock time from the
// eval_YYYYMMDD_HHMMSS filename convention. Files named some other way fall
// back to their modification time.
func runTimestamp(filename string, modTime time.Time) time.Time {
	stem := strings.TrimSuffix(filename, runFileExt)
	raw, ok := strings.CutPrefix(stem, runFilePrefix)
	if !ok {
		return modTime
	}
	ts, err := time.ParseInLocation(timestampLayout, raw, time.Local)
	if err != nil {
		return modTime
	}
	return ts
}

var _ evaluation.Repository = (*FileRepository)(nil)
