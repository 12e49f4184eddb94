package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an archive family with no registered verifier.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrJobInProgress indicates a job is already running for the same
	// archive and password list.
	ErrJobInProgress = errors.New("job in progress")

	// Candidate list errors.

	// ErrCandidateListUnreadable indicates the password list could not be
	// opened or read. Nothing was tried.
	ErrCandidateListUnreadable = errors.New("password list unreadable")

	// ErrEmptyCandidateList indicates the password list was readable but
	// held no non-blank lines. There was nothing to try.
	ErrEmptyCandidateList = errors.New("password list contains no candidates")

	// Job errors.

	// ErrCancelled indicates the job was stopped by its caller.
	ErrCancelled = errors.New("cancelled")

	// ErrUnexpectedOutcome indicates a verifier returned a trial outcome
	// outside the accepted/rejected/transient set.
	ErrUnexpectedOutcome = errors.New("unexpected trial outcome")
)
