package driving

import (
	"context"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// HistoryService exposes finished runs.
type HistoryService interface {
	// List returns up to limit records, most recent first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns one record by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
