package driving

import (
	"context"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// WordlistService loads and expands password lists without running a job.
type WordlistService interface {
	// Expand loads the list at path and, when enhance is set, adds
	// generated variants bounded by variantCap per candidate.
	Expand(ctx context.Context, path string, enhance bool, variantCap int) (domain.CandidateList, error)

	// Variants returns the variant set for a single candidate.
	Variants(candidate string, variantCap int) domain.VariantSet
}
