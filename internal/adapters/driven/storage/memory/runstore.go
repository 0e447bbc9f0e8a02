// Package memory holds in-memory implementations of the driven storage
// ports. They back tests and one-shot CLI invocations where persisting
// runs across processes is not needed.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.ExtractionRun
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.ExtractionRun),
	}
}

// SaveRun stores an extraction run.
func (s *RunStore) SaveRun(_ context.Context, run *domain.ExtractionRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// FindByFingerprint returns the most recent run for a content fingerprint.
func (s *RunStore) FindByFingerprint(_ context.Context, fingerprint string) (*domain.ExtractionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.ExtractionRun
	for id := range s.runs {
		run := s.runs[id]
		if run.Fingerprint != fingerprint {
			continue
		}
		if found == nil || run.CreatedAt.After(found.CreatedAt) {
			found = &run
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.ExtractionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.ExtractionRun, 0, len(s.runs))
	for id := range s.runs {
		runs = append(runs, s.runs[id])
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && limit < len(runs) {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close releases resources. No-op for the in-memory store.
func (s *RunStore) Close() error {
	return nil
}
