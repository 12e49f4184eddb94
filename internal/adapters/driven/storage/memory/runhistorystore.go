package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure RunHistoryStore implements the interface.
var _ driven.RunHistoryStore = (*RunHistoryStore)(nil)

// RunHistoryStore is an in-memory implementation of driven.RunHistoryStore.
// It backs history when persistence is disabled and in tests.
type RunHistoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.RunRecord
}

// NewRunHistoryStore creates a new in-memory run history store.
func NewRunHistoryStore() *RunHistoryStore {
	return &RunHistoryStore{
		records: make(map[string]domain.RunRecord),
	}
}

// Save stores or replaces a run record.
func (s *RunHistoryStore) Save(_ context.Context, record domain.RunRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

// Get retrieves a run record by ID.
func (s *RunHistoryStore) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns records ordered by end time, most recent first.
func (s *RunHistoryStore) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	result := make([]domain.RunRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].EndedAt.Equal(result[j].EndedAt) {
			return result[i].EndedAt.After(result[j].EndedAt)
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Clear removes all records.
func (s *RunHistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.RunRecord)
	return nil
}
