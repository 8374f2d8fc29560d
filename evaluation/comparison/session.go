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

// Package comparison assembles cross-run views (component bars, radar,
// heatmaps, diffs, time series) from up to three evaluation runs fetched
// through a session-scoped cache.
package comparison

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"google.golang.org/rageval/evaluation"
)

// MaxComparisonRuns is the hard cap on comparison runs per selection, on
// top of the current run. It is enforced at selection time, before any
// fetch; the view builders themselves take whatever they are given.
const MaxComparisonRuns = 2

const defaultCacheSize = 16

// Session fetches and caches the raw runs behind one comparison workflow.
// The cache lives exactly as long as the session: a run id fetched once is
// never fetched again, and dropping the session (or calling Reset) drops
// the cache. Sessions hold no global state.
type Session struct {
	repo  evaluation.Repository
	cache *lru.Cache[string, *evaluation.EvaluationRun]
}

type sessionOptions struct {
	cacheSize int
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

// WithCacheSize bounds the number of runs the session keeps. The default
// comfortably covers flipping between a handful of selections.
func WithCacheSize(n int) SessionOption {
	return func(o *sessionOptions) { o.cacheSize = n }
}

// NewSession creates a comparison session on top of a run repository.
func NewSession(repo evaluation.Repository, opts ...SessionOption) (*Session, error) {
	options := sessionOptions{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&options)
	}

	cache, err := lru.New[string, *evaluation.EvaluationRun](options.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create run cache: %w", err)
	}
	return &Session{repo: repo, cache: cache}, nil
}

// Select fetches the current run and up to MaxComparisonRuns comparison
// runs, then rebuilds every comparison view from scratch. Cached runs are
// reused; misses are fetched concurrently. Duplicate ids collapse to one
// fetch and one view slot.
func (s *Session) Select(ctx context.Context, currentID string, comparisonIDs ...string) (*Views, error) {
	if len(comparisonIDs) > MaxComparisonRuns {
		return nil, fmt.Errorf("%w: selected %d, cap is %d",
			evaluation.ErrTooManyRuns, len(comparisonIDs), MaxComparisonRuns)
	}
	if currentID == "" {
		return nil, fmt.Errorf("%w: empty current run id", evaluation.ErrInvalidInput)
	}

	ids := make([]string, 0, 1+len(comparisonIDs))
	seen := make(map[string]bool, 1+len(comparisonIDs))
	for _, id := range append([]string{currentID}, comparisonIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	runs := make([]*evaluation.EvaluationRun, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	fetched := 0
	for i, id := range ids {
		if run, ok := s.cache.Get(id); ok {
			runs[i] = run
			continue
		}
		fetched++
		g.Go(func() error {
			run, err := s.repo.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch run %q: %w", id, err)
			}
			s.cache.Add(id, run)
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("current", currentID).
		Int("runs", len(ids)).
		Int("fetched", fetched).
		Msg("Selected comparison runs")

	return buildViews(ids, runs), nil
}

// Cached reports whether a run id is already held by the session.
func (s *Session) Cached(id string) bool {
	return s.cache.Contains(id)
}

// Reset drops every cached run. Call it when the comparison workflow ends;
// the session is reusable afterwards.
func (s *Session) Reset() {
	s.cache.Purge()
}
