package driven

import (
	"context"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// ArchiveVerifier checks one candidate against one archive.
// Implementations never return an error: every failure is expressed as a
// domain.TrialOutcome.
type ArchiveVerifier interface {
	// Verify reports whether candidate opens the archive.
	// The context is not used to interrupt a trial in progress.
	Verify(ctx context.Context, archive domain.ArchiveReference, candidate string) domain.TrialOutcome
}

// FormatVerifier checks candidates for a single archive family.
// New families are supported by adding a FormatVerifier, not by
// branching inside the job.
type FormatVerifier interface {
	// Format returns the family this verifier handles.
	Format() domain.ArchiveFormat

	// Verify reports whether password opens the archive at path.
	Verify(ctx context.Context, path, password string) domain.TrialOutcome
}
