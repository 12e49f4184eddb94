package domain

import "fmt"

// JobState is the lifecycle state of a cracking job.
type JobState string

// Job states. Idle is initial; Found, Exhausted, Stopped and Failed are
// terminal and mutually exclusive.
const (
	JobIdle      JobState = "idle"
	JobRunning   JobState = "running"
	JobFound     JobState = "found"
	JobExhausted JobState = "exhausted"
	JobStopped   JobState = "stopped"
	JobFailed    JobState = "failed"
)

// IsTerminal reports whether the state ends the job.
func (s JobState) IsTerminal() bool {
	switch s {
	case JobFound, JobExhausted, JobStopped, JobFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether s -> to is a legal move.
func (s JobState) CanTransitionTo(to JobState) bool {
	switch s {
	case JobIdle:
		return to == JobRunning
	case JobRunning:
		return to.IsTerminal()
	default:
		return false
	}
}

// String returns the string representation.
func (s JobState) String() string {
	return string(s)
}

// StateForOutcome maps a terminal run outcome to its job state.
func StateForOutcome(o RunOutcome) (JobState, error) {
	switch o {
	case OutcomeFound:
		return JobFound, nil
	case OutcomeExhausted:
		return JobExhausted, nil
	case OutcomeStopped:
		return JobStopped, nil
	case OutcomeFailed:
		return JobFailed, nil
	default:
		return "", fmt.Errorf("%w: run outcome %q", ErrInvalidInput, o)
	}
}

// JobRequest describes one cracking run.
type JobRequest struct {
	// ArchivePath is the archive to verify candidates against.
	ArchivePath string

	// PasswordListPath is the newline-delimited candidate file.
	PasswordListPath string

	// Enhance expands the list with generated variants before the run.
	Enhance bool

	// VariantCap bounds the variants generated per candidate.
	// Zero means DefaultVariantCap.
	VariantCap int

	// Format overrides the family derived from the archive extension.
	// Empty means derive from the extension.
	Format ArchiveFormat
}

// Validate checks that the request names both inputs.
func (r JobRequest) Validate() error {
	if r.ArchivePath == "" {
		return fmt.Errorf("%w: archive path is required", ErrInvalidInput)
	}
	if r.PasswordListPath == "" {
		return fmt.Errorf("%w: password list path is required", ErrInvalidInput)
	}
	if r.VariantCap < 0 {
		return fmt.Errorf("%w: variant cap must not be negative", ErrInvalidInput)
	}
	if r.Format != "" && !r.Format.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.Format)
	}
	return nil
}

// Archive resolves the archive reference for the request.
func (r JobRequest) Archive() ArchiveReference {
	ref := NewArchiveReference(r.ArchivePath)
	if r.Format != "" {
		ref = ref.WithFormat(r.Format)
	}
	return ref
}

// Cap returns the effective variant cap.
func (r JobRequest) Cap() int {
	if r.VariantCap <= 0 {
		return DefaultVariantCap
	}
	return r.VariantCap
}

// Key identifies the archive/list pair; only one job may run per key.
func (r JobRequest) Key() string {
	return r.ArchivePath + "\x00" + r.PasswordListPath
}
