package domain

import "time"

// RunRecord is a finished run as kept in history.
// The accepted password is never recorded.
type RunRecord struct {
	// ID is the job identifier.
	ID string

	// ArchivePath is the archive the run targeted.
	ArchivePath string

	// PasswordListPath is the candidate file used.
	PasswordListPath string

	// Format is the archive family verified.
	Format ArchiveFormat

	// Enhanced indicates variants were generated.
	Enhanced bool

	// Outcome is the terminal outcome.
	Outcome RunOutcome

	// Message holds the failure message for failed runs.
	Message string

	// Attempts is the number of candidates verified.
	Attempts int

	// Total is the number of candidates in the run.
	Total int

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run ended.
	EndedAt time.Time
}

// NewRunRecord builds a history record from a request and its result.
func NewRunRecord(id string, req JobRequest, result RunResult) RunRecord {
	return RunRecord{
		ID:               id,
		ArchivePath:      req.ArchivePath,
		PasswordListPath: req.PasswordListPath,
		Format:           req.Archive().Format,
		Enhanced:         req.Enhance,
		Outcome:          result.Outcome,
		Message:          result.Message,
		Attempts:         result.Attempts,
		Total:            result.Total,
		StartedAt:        result.StartedAt,
		EndedAt:          result.EndedAt,
	}
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
