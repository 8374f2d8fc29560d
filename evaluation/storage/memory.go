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
	"iter"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"rsc.io/omap"
	"rsc.io/ordered"

	"google.golang.org/rageval/evaluation"
)

// MemoryRepository keeps runs in an ordered in-memory map keyed by reversed
// timestamp, so a single forward scan produces the newest-first listing.
// It is primarily for testing and for ad-hoc analysis sessions that should
// not touch disk.
type MemoryRepository struct {
	mu sync.RWMutex
	// ordered(rev(timestamp), id) -> encoded run
	runs omap.Map[string, memoryRun]
	// byID maps a run id to its encoded key in runs.
	byID map[string]string
}

type memoryRun struct {
	// payload is the encoded run. Get decodes it fresh each time, so
	// callers can never mutate the stored record through a returned run.
	payload   []byte
	timestamp time.Time
}

type runKey struct {
	Timestamp int64 // UnixNano
	ID        string
}

func (k runKey) Encode() string {
	return string(ordered.Encode(ordered.Rev(k.Timestamp), k.ID))
}

func (k *runKey) Decode(key string) error {
	var ts ordered.Reverse[int64]
	if err := ordered.Decode([]byte(key), &ts, &k.ID); err != nil {
		return err
	}
	k.Timestamp = ts.Value()
	return nil
}

// Scan bounds covering every storable key. Reversal makes MaxInt64 encode
// first and MinInt64 last; no UnixNano of a real run timestamp is MinInt64.
var (
	memScanLo = runKey{Timestamp: math.MaxInt64}.Encode()
	memScanHi = runKey{Timestamp: math.MinInt64}.Encode()
)

// NewMemoryRepository creates an empty in-memory run repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]string)}
}

// scan iterates all stored runs in key order, which is newest first.
func (m *MemoryRepository) scan() iter.Seq2[runKey, memoryRun] {
	return func(yield func(runKey, memoryRun) bool) {
		for k, v := range m.runs.Scan(memScanLo, memScanHi) {
			var key runKey
			if err := key.Decode(k); err != nil {
				continue
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

// List returns metadata for every stored run, newest first. Filename is
// empty: in-memory runs have no backing file.
func (m *MemoryRepository) List(ctx context.Context) ([]evaluation.RunInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]evaluation.RunInfo, 0, len(m.byID))
	for key, mr := range m.scan() {
		infos = append(infos, evaluation.RunInfo{
			ID:        key.ID,
			Timestamp: mr.timestamp,
			Size:      int64(len(mr.payload)),
		})
	}
	return infos, nil
}

// Get retrieves one run by id.
func (m *MemoryRepository) Get(ctx context.Context, id string) (*evaluation.EvaluationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.byID[id]
	if !ok {
		return nil, evaluation.ErrNotFound
	}
	mr, ok := m.runs.Get(key)
	if !ok {
		return nil, evaluation.ErrNotFound
	}
	return evaluation.DecodeRun(mr.payload, id, mr.timestamp)
}

// Statistics derives the per-run aggregates on demand.
func (m *MemoryRepository) Statistics(ctx context.Context, id string) (*evaluation.Statistics, error) {
	run, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return evaluation.ComputeStatistics(run), nil
}

// Save stores a run, overwriting any previous record with the same id. A
// missing ID gets a fresh UUID and a zero timestamp is set to now; both are
// written back to the caller's run.
func (m *MemoryRepository) Save(ctx context.Context, run *evaluation.EvaluationRun) error {
	if run == nil {
		return evaluation.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	// Re-saving under the same id may carry a new timestamp, which moves
	// the record to a different key.
	if old, ok := m.byID[run.ID]; ok {
		m.runs.Delete(old)
	}

	key := runKey{Timestamp: run.Timestamp.UnixNano(), ID: run.ID}.Encode()
	m.runs.Set(key, memoryRun{payload: data, timestamp: run.Timestamp})
	m.byID[run.ID] = key
	return nil
}

// Delete removes a stored run.
func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.byID[id]
	if !ok {
		return evaluation.ErrNotFound
	}
	m.runs.Delete(key)
	delete(m.byID, id)
	return nil
}

var _ evaluation.Repository = (*MemoryRepository)(nil)
