package domain

import (
	"fmt"
	"time"
)

// TrialStatus is the tri-state result of verifying one candidate.
type TrialStatus int

// Trial statuses. The zero value is deliberately not a valid status.
const (
	// TrialAccepted means the candidate decrypted the archive.
	TrialAccepted TrialStatus = iota + 1

	// TrialRejected means the candidate is wrong, or the failure could not
	// be told apart from a wrong password.
	TrialRejected

	// TrialTransientError means the trial failed for a reason unrelated to
	// password correctness.
	TrialTransientError
)

// String returns the string representation.
func (s TrialStatus) String() string {
	switch s {
	case TrialAccepted:
		return "accepted"
	case TrialRejected:
		return "rejected"
	case TrialTransientError:
		return "transient_error"
	default:
		return fmt.Sprintf("trial_status(%d)", int(s))
	}
}

// TrialOutcome is produced once per (archive, candidate) pair.
type TrialOutcome struct {
	Status TrialStatus
	Reason string
}

// Accepted returns an accepting outcome.
func Accepted() TrialOutcome {
	return TrialOutcome{Status: TrialAccepted}
}

// Rejected returns a rejecting outcome with an optional reason.
func Rejected(reason string) TrialOutcome {
	return TrialOutcome{Status: TrialRejected, Reason: reason}
}

// TransientError returns an indeterminate outcome.
func TransientError(reason string) TrialOutcome {
	return TrialOutcome{Status: TrialTransientError, Reason: reason}
}

// IsAccepted reports whether the candidate was accepted.
func (o TrialOutcome) IsAccepted() bool {
	return o.Status == TrialAccepted
}

// Continues reports whether the job should move on to the next candidate.
// Only rejections and transient errors continue a run.
func (o TrialOutcome) Continues() bool {
	return o.Status == TrialRejected || o.Status == TrialTransientError
}

func (o TrialOutcome) String() string {
	if o.Reason == "" {
		return o.Status.String()
	}
	return o.Status.String() + ": " + o.Reason
}

// RunOutcome is the terminal outcome of a cracking job.
type RunOutcome string

// Terminal outcomes. Exactly one is reached per job.
const (
	OutcomeFound     RunOutcome = "found"
	OutcomeExhausted RunOutcome = "exhausted"
	OutcomeStopped   RunOutcome = "stopped"
	OutcomeFailed    RunOutcome = "failed"
)

// IsValid returns true if the outcome is recognised.
func (o RunOutcome) IsValid() bool {
	switch o {
	case OutcomeFound, OutcomeExhausted, OutcomeStopped, OutcomeFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o RunOutcome) String() string {
	return string(o)
}

// Description returns a human-readable description of the outcome.
func (o RunOutcome) Description() string {
	switch o {
	case OutcomeFound:
		return "Password found"
	case OutcomeExhausted:
		return "No password in the list matched"
	case OutcomeStopped:
		return "Stopped by user"
	case OutcomeFailed:
		return "Failed"
	default:
		return unknownDescription
	}
}

// RunResult is the single terminal result of a cracking job.
type RunResult struct {
	// Outcome is the terminal state reached.
	Outcome RunOutcome

	// Password is the accepted candidate. Set only for OutcomeFound.
	Password string

	// Message describes a failure. Set only for OutcomeFailed.
	Message string

	// Err is the cause for OutcomeFailed and OutcomeStopped. It wraps a
	// domain sentinel so callers can use errors.Is.
	Err error

	// Attempts is the number of candidates verified.
	Attempts int

	// Total is the number of candidates in the run.
	Total int

	// StartedAt is when the job left Idle.
	StartedAt time.Time

	// EndedAt is when the terminal state was reached.
	EndedAt time.Time
}

// Found builds a result for an accepted password.
func Found(password string) RunResult {
	return RunResult{Outcome: OutcomeFound, Password: password}
}

// Exhausted builds a result for a list with no accepted candidate.
func Exhausted() RunResult {
	return RunResult{Outcome: OutcomeExhausted}
}

// Stopped builds a result for a cancelled run.
func Stopped() RunResult {
	return RunResult{Outcome: OutcomeStopped, Err: ErrCancelled}
}

// Failed builds a result for a fatal error.
func Failed(message string, err error) RunResult {
	return RunResult{Outcome: OutcomeFailed, Message: message, Err: err}
}

// Duration returns how long the run took.
func (r RunResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// ProgressEvent reports the candidate about to be verified.
type ProgressEvent struct {
	// Index is the 1-based position of Candidate in the run.
	Index int

	// Total is the number of candidates in the run.
	Total int

	// Candidate is the value being attempted.
	Candidate string
}

// Fraction returns completed progress in [0, 1].
func (p ProgressEvent) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Index) / float64(p.Total)
}

// JobEvent is one item on a job's event stream. Exactly one of Progress
// and Result is set. A Result event is always the last.
type JobEvent struct {
	Progress *ProgressEvent
	Result   *RunResult
}

// IsTerminal reports whether the event carries the run result.
func (e JobEvent) IsTerminal() bool {
	return e.Result != nil
}
