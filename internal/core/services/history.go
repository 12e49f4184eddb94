package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes recorded runs.
type HistoryService struct {
	store driven.RunHistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.RunHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns up to limit records, most recent first.
// A limit of zero or less returns all records.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, errors.New("history store not configured")
	}
	return s.store.List(ctx, limit)
}

// Get returns one record by ID, or domain.ErrNotFound.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if s.store == nil {
		return nil, errors.New("history store not configured")
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Clear removes all records.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return errors.New("history store not configured")
	}
	return s.store.Clear(ctx)
}
