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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"google.golang.org/rageval/evaluation"
)

func TestDatabaseRepository(t *testing.T) {
	ctx := t.Context()
	repo, err := NewDatabaseRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("NewDatabaseRepository() error = %v", err)
	}

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, run := range []*evaluation.EvaluationRun{
		testRun("eval_20250601_090000", base, 0.6),
		testRun("eval_20250602_150405", base.Add(30*time.Hour), 0.8),
	} {
		if err := repo.Save(ctx, run); err != nil {
			t.Fatalf("Save(%s) error = %v", run.ID, err)
		}
	}

	t.Run("List", func(t *testing.T) {
		infos, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		var ids []string
		for _, info := range infos {
			ids = append(ids, info.ID)
		}
		want := []string{"eval_20250602_150405", "eval_20250601_090000"}
		if diff := cmp.Diff(want, ids); diff != "" {
			t.Errorf("List() order mismatch (-want +got):\n%s", diff)
		}
		if infos[0].Size == 0 {
			t.Error("List()[0].Size = 0, want the payload size")
		}
	})

	t.Run("Get", func(t *testing.T) {
		got, err := repo.Get(ctx, "eval_20250601_090000")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.OverallScore != 0.6 {
			t.Errorf("Get().OverallScore = %v, want 0.6", got.OverallScore)
		}
		if len(got.Goals) != 1 || len(got.Goals[0].Questions) != 1 {
			t.Errorf("Get() payload did not round-trip: %+v", got.Goals)
		}
		if !got.Timestamp.Equal(base) {
			t.Errorf("Get().Timestamp = %v, want %v", got.Timestamp, base)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := repo.Save(ctx, testRun("eval_20250601_090000", base, 0.65)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := repo.Get(ctx, "eval_20250601_090000")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.OverallScore != 0.65 {
			t.Errorf("Get().OverallScore = %v after overwrite, want 0.65", got.OverallScore)
		}
		if infos, _ := repo.List(ctx); len(infos) != 2 {
			t.Errorf("List() returned %d runs after overwrite, want 2", len(infos))
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		stats, err := repo.Statistics(ctx, "eval_20250602_150405")
		if err != nil {
			t.Fatalf("Statistics() error = %v", err)
		}
		if stats.OverallScore != 0.8 {
			t.Errorf("Statistics().OverallScore = %v, want 0.8", stats.OverallScore)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := repo.Get(ctx, "eval_nope"); !errors.Is(err, evaluation.ErrNotFound) {
			t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
		}
		if err := repo.Delete(ctx, "eval_nope"); !errors.Is(err, evaluation.ErrNotFound) {
			t.Errorf("Delete(unknown) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "eval_20250601_090000"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Get(ctx, "eval_20250601_090000"); !errors.Is(err, evaluation.ErrNotFound) {
			t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
		}
	})
}

func TestDatabaseRepositorySaveAssignsIdentity(t *testing.T) {
	ctx := t.Context()
	repo, err := NewDatabaseRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("NewDatabaseRepository() error = %v", err)
	}

	run := testRun("", time.Time{}, 0.5)
	if err := repo.Save(ctx, run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if run.ID == "" || run.Timestamp.IsZero() {
		t.Fatalf("Save() left identity unset: id=%q ts=%v", run.ID, run.Timestamp)
	}
	if _, err := repo.Get(ctx, run.ID); err != nil {
		t.Errorf("Get(assigned id) error = %v", err)
	}
}
