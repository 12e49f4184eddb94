package driven

import "github.com/custodia-labs/zirar/internal/core/domain"

// CandidateSource loads a password list.
type CandidateSource interface {
	// Load reads the list at path. Lines are trimmed, blank lines and
	// duplicates are dropped, and first-seen order is kept.
	// Returns an error wrapping domain.ErrCandidateListUnreadable when the
	// file cannot be opened or read. A readable file with no candidates
	// yields an empty list and no error.
	Load(path string) (domain.CandidateList, error)
}
