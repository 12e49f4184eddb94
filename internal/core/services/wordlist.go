package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
)

// Ensure WordlistService implements the interface.
var _ driving.WordlistService = (*WordlistService)(nil)

// WordlistService previews the candidates a job would try.
type WordlistService struct {
	source    driven.CandidateSource
	generator *VariantGenerator
	enhancer  *ListEnhancer
}

// NewWordlistService creates a wordlist service.
// generator may be nil to use the default substitution table.
func NewWordlistService(source driven.CandidateSource, generator *VariantGenerator) *WordlistService {
	if generator == nil {
		generator = NewDefaultVariantGenerator()
	}
	return &WordlistService{
		source:    source,
		generator: generator,
		enhancer:  NewListEnhancer(generator),
	}
}

// Expand loads the list at path and optionally enhances it. The result
// is exactly the sequence a job with the same options would attempt.
func (s *WordlistService) Expand(
	ctx context.Context,
	path string,
	enhance bool,
	variantCap int,
) (domain.CandidateList, error) {
	if s.source == nil {
		return nil, errors.New("candidate source not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list, err := s.source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if list.IsEmpty() {
		return nil, domain.ErrEmptyCandidateList
	}
	if !enhance {
		return list, nil
	}

	if variantCap <= 0 {
		variantCap = domain.DefaultVariantCap
	}
	return s.enhancer.Enhance(list, variantCap), nil
}

// Variants returns the variant set for a single candidate.
func (s *WordlistService) Variants(candidate string, variantCap int) domain.VariantSet {
	return s.generator.Generate(candidate, variantCap)
}
