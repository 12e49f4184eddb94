package driven

import (
	"context"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// RunHistoryStore persists finished runs.
type RunHistoryStore interface {
	// Save stores a run record, replacing any record with the same ID.
	Save(ctx context.Context, record domain.RunRecord) error

	// Get retrieves a run record by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// List returns the most recent records first, at most limit of them.
	// A limit of zero or less returns all records.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
