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

// Package questionset reads the generated test-case sets that the question
// generator caches alongside evaluation results. A set is one JSON file
// holding an array of questions; the file stem is the set id.
package questionset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"google.golang.org/rageval/evaluation"
)

const setFileExt = ".json"

// Question is one generated test case. Only QuestionType feeds the
// analytics; the remaining fields pass through for display.
type Question struct {
	Question     string   `json:"question"`
	GroundTruth  string   `json:"ground_truth"`
	QuestionType string   `json:"question_type,omitempty"`
	Entities     []string `json:"entities,omitempty"`
}

// SetInfo summarizes one question-set file without exposing its contents.
type SetInfo struct {
	ID             string         `json:"id"`
	Filename       string         `json:"filename"`
	TotalQuestions int            `json:"total_questions"`
	QuestionTypes  map[string]int `json:"question_types"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Library reads question sets from a single directory.
type Library struct {
	dir string
}

// NewLibrary returns a library rooted at dir. The directory does not have
// to exist yet; a missing directory lists as empty.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// List returns a summary of every readable question set, newest first.
// Files that are not JSON arrays of questions are skipped with a warning;
// the question generator shares its cache directory with other tools and a
// foreign file must not break the listing.
func (l *Library) List(ctx context.Context) ([]SetInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SetInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read questions directory: %w", err)
	}

	infos := make([]SetInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != setFileExt {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		questions, err := l.readSet(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			log.Warn().Str("filename", entry.Name()).Err(err).Msg("Skipping unreadable question set")
			continue
		}

		infos = append(infos, SetInfo{
			ID:             strings.TrimSuffix(entry.Name(), setFileExt),
			Filename:       entry.Name(),
			TotalQuestions: len(questions),
			QuestionTypes:  countTypes(questions),
			Timestamp:      fi.ModTime(),
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// Load returns the questions of one set by id.
func (l *Library) Load(ctx context.Context, id string) ([]Question, error) {
	if id == "" {
		return nil, evaluation.ErrInvalidInput
	}

	questions, err := l.readSet(filepath.Join(l.dir, id+setFileExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, err
	}
	return questions, nil
}

func (l *Library) readSet(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question set: %w", err)
	}
	return questions, nil
}

// countTypes tallies questions per question type. Untyped questions count
// under "unknown", matching the statistics aggregator's normalization.
func countTypes(questions []Question) map[string]int {
	counts := make(map[string]int, len(questions))
	for _, q := range questions {
		qt := q.QuestionType
		if qt == "" {
			qt = "unknown"
		}
		counts[qt]++
	}
	return counts
}
