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
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested run or question set was not found.
	ErrNotFound = errors.New("evaluation: not found")

	// ErrInvalidInput indicates invalid input parameters.
	ErrInvalidInput = errors.New("evaluation: invalid input")

	// ErrTooManyRuns indicates a comparison selection exceeded the run cap.
	ErrTooManyRuns = errors.New("evaluation: too many comparison runs")
)

// RunInfo is the listing metadata for one stored run.
type RunInfo struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

// Repository supplies raw evaluation records. The analytics engine performs
// no I/O itself; everything it consumes arrives through this boundary.
// Lookups of unknown ids fail with ErrNotFound and are never retried.
type Repository interface {
	// List returns metadata for every stored run, newest first.
	List(ctx context.Context) ([]RunInfo, error)

	// Get retrieves the full hierarchical record for a run.
	Get(ctx context.Context, id string) (*EvaluationRun, error)

	// Statistics returns the per-run statistics. Backends may precompute
	// or derive them on demand via ComputeStatistics; callers cannot tell
	// the difference.
	Statistics(ctx context.Context, id string) (*Statistics, error)

	// Save stores a run under its ID, overwriting any previous record.
	Save(ctx context.Context, run *EvaluationRun) error

	// Delete removes a stored run.
	Delete(ctx context.Context, id string) error
}
