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
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"google.golang.org/rageval/evaluation"
)

// runRecord is the archive row for one evaluation run. The hierarchical
// record is stored as a JSON payload; the scalar columns exist so listing
// and ordering never decode payloads.
type runRecord struct {
	ID           string     `gorm:"column:id;primaryKey"`
	Timestamp    time.Time  `gorm:"column:timestamp;index"`
	OverallScore float64    `gorm:"column:overall_score"`
	Size         int64      `gorm:"column:size"`
	Payload      RunPayload `gorm:"column:payload"`
}

func (runRecord) TableName() string { return "evaluation_runs" }

// DatabaseRepository archives runs in a SQL database. The stock constructor
// uses the pure-Go SQLite driver, which keeps a whole archive in one file
// and needs no server. Results directories grow one file per run; the
// archive is the long-term home once a directory gets unwieldy.
type DatabaseRepository struct {
	db *gorm.DB
}

// NewDatabaseRepository opens (creating if needed) a SQLite archive at path
// and migrates the run table.
func NewDatabaseRepository(path string) (*DatabaseRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open run archive: %w", err)
	}
	return NewDatabaseRepositoryWithDB(db)
}

// NewDatabaseRepositoryWithDB wraps an existing gorm handle, migrating the
// run table. Callers use it to bring their own dialector.
func NewDatabaseRepositoryWithDB(db *gorm.DB) (*DatabaseRepository, error) {
	if err := db.AutoMigrate(&runRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run archive: %w", err)
	}
	return &DatabaseRepository{db: db}, nil
}

// List returns metadata for every archived run, newest first.
func (d *DatabaseRepository) List(ctx context.Context) ([]evaluation.RunInfo, error) {
	var records []runRecord
	err := d.db.WithContext(ctx).
		Select("id", "timestamp", "size").
		Order("timestamp DESC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	infos := make([]evaluation.RunInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, evaluation.RunInfo{
			ID:        rec.ID,
			Timestamp: rec.Timestamp,
			Size:      rec.Size,
		})
	}
	return infos, nil
}

// Get retrieves one run by id.
func (d *DatabaseRepository) Get(ctx context.Context, id string) (*evaluation.EvaluationRun, error) {
	var rec runRecord
	err := d.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return evaluation.DecodeRun([]byte(rec.Payload), rec.ID, rec.Timestamp)
}

// Statistics derives the per-run aggregates on demand.
func (d *DatabaseRepository) Statistics(ctx context.Context, id string) (*evaluation.Statistics, error) {
	run, err := d.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return evaluation.ComputeStatistics(run), nil
}

// Save archives a run, overwriting any previous record with the same id. A
// missing ID gets a fresh UUID and a zero timestamp is set to now; both are
// written back to the caller's run.
func (d *DatabaseRepository) Save(ctx context.Context, run *evaluation.EvaluationRun) error {
	if run == nil {
		return evaluation.ErrInvalidInput
	}

	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	rec := runRecord{
		ID:           run.ID,
		Timestamp:    run.Timestamp,
		OverallScore: run.OverallScore,
		Size:         int64(len(payload)),
		Payload:      RunPayload(payload),
	}
	if err := d.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Delete removes an archived run.
func (d *DatabaseRepository) Delete(ctx context.Context, id string) error {
	res := d.db.WithContext(ctx).Delete(&runRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete run: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return evaluation.ErrNotFound
	}
	return nil
}

var _ evaluation.Repository = (*DatabaseRepository)(nil)
