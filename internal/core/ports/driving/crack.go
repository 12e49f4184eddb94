package driving

import (
	"context"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// CrackService starts and runs cracking jobs.
type CrackService interface {
	// Start launches a job in the background and returns immediately.
	// Returns domain.ErrJobInProgress if a job for the same archive and
	// password list has not yet finished.
	Start(ctx context.Context, req domain.JobRequest) (Job, error)

	// Run executes a job on the calling goroutine. progress may be nil.
	Run(ctx context.Context, req domain.JobRequest, progress ProgressFunc) (domain.RunResult, error)
}

// ProgressFunc receives progress events from a synchronous run.
type ProgressFunc func(domain.ProgressEvent)

// Job is a running or finished cracking job.
type Job interface {
	// ID identifies the job.
	ID() string

	// Events yields zero or more progress events followed by exactly one
	// result event, then is closed. The channel is unbuffered and the
	// result send blocks, so callers must drain it until it is closed.
	// Progress events still pending when the job is cancelled are dropped.
	Events() <-chan domain.JobEvent

	// Cancel asks the job to stop before its next trial.
	// Calling it more than once has no further effect.
	Cancel()

	// Done is closed once the job reaches a terminal state.
	Done() <-chan struct{}

	// Result returns the terminal result. It is only meaningful after
	// Done is closed.
	Result() domain.RunResult

	// Status returns a snapshot of the job.
	Status() JobStatus
}

// JobStatus is a point-in-time view of a job.
type JobStatus struct {
	// ID identifies the job.
	ID string

	// State is the lifecycle state.
	State domain.JobState

	// Index is the 1-based position of the last candidate attempted.
	Index int

	// Total is the number of candidates in the run.
	Total int
}
