package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
	"github.com/custodia-labs/zirar/internal/logger"
)

// Ensure CrackService implements the interface.
var _ driving.CrackService = (*CrackService)(nil)

// CrackService runs cracking jobs: it loads candidates, optionally
// enhances them, and tries each against the archive until one is
// accepted, the list runs out, or the job is cancelled.
type CrackService struct {
	source   driven.CandidateSource
	verifier driven.ArchiveVerifier
	enhancer *ListEnhancer
	history  driven.RunHistoryStore

	mu     sync.Mutex
	active map[string]*crackJob
}

// NewCrackService creates a crack service.
// enhancer may be nil to use the default substitution table.
// history is optional - if nil, finished runs are not recorded.
func NewCrackService(
	source driven.CandidateSource,
	verifier driven.ArchiveVerifier,
	enhancer *ListEnhancer,
	history driven.RunHistoryStore,
) *CrackService {
	if enhancer == nil {
		enhancer = NewListEnhancer(nil)
	}
	return &CrackService{
		source:   source,
		verifier: verifier,
		enhancer: enhancer,
		history:  history,
		active:   make(map[string]*crackJob),
	}
}

// Start launches a job on its own goroutine.
func (s *CrackService) Start(ctx context.Context, req domain.JobRequest) (driving.Job, error) {
	job, err := s.acquire(req)
	if err != nil {
		return nil, err
	}

	go func() {
		result := s.execute(ctx, job, func(ev domain.ProgressEvent) bool {
			return job.publish(ctx, ev)
		})
		job.deliver(result)
	}()

	return job, nil
}

// Run executes a job on the calling goroutine. Cancelling ctx stops the
// job before its next trial.
func (s *CrackService) Run(
	ctx context.Context,
	req domain.JobRequest,
	progress driving.ProgressFunc,
) (domain.RunResult, error) {
	job, err := s.acquire(req)
	if err != nil {
		return domain.RunResult{}, err
	}

	result := s.execute(ctx, job, func(ev domain.ProgressEvent) bool {
		if progress != nil {
			progress(ev)
		}
		return true
	})
	close(job.events)
	return result, nil
}

// acquire validates req and registers a new job for its archive/list pair.
func (s *CrackService) acquire(req domain.JobRequest) (*crackJob, error) {
	if s.source == nil || s.verifier == nil {
		return nil, errors.New("crack service not configured")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := req.Key()
	if _, running := s.active[key]; running {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobInProgress, req.ArchivePath)
	}
	job := newCrackJob(uuid.NewString(), req)
	s.active[key] = job
	return job, nil
}

func (s *CrackService) release(job *crackJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[job.req.Key()] == job {
		delete(s.active, job.req.Key())
	}
}

// emitFunc hands a progress event to the consumer. It returns false when
// the event could not be delivered because the job is being stopped.
type emitFunc func(domain.ProgressEvent) bool

// execute drives job from Idle to a terminal state. The run is recorded
// and the archive/list pair released before Done is closed.
func (s *CrackService) execute(ctx context.Context, job *crackJob, emit emitFunc) domain.RunResult {
	startedAt := time.Now()
	job.transition(domain.JobRunning)
	logger.Section("Job " + job.id)
	job.log.Info("%s against %s", job.req.PasswordListPath, job.req.ArchivePath)

	result := s.attempt(ctx, job, emit)
	result.StartedAt = startedAt
	result.EndedAt = time.Now()
	job.log.Info("%s after %d/%d attempts in %s",
		result.Outcome, result.Attempts, result.Total, result.Duration().Round(time.Millisecond))

	s.record(context.WithoutCancel(ctx), job, result)
	s.release(job)
	job.finish(result)
	return result
}

// attempt loads the candidates and runs the trial loop. Trials run on a
// context that ignores cancellation, so a trial in flight when ctx ends
// still reports its outcome; ctx only stops the loop between trials.
func (s *CrackService) attempt(ctx context.Context, job *crackJob, emit emitFunc) domain.RunResult {
	req := job.req

	candidates, err := s.source.Load(req.PasswordListPath)
	if err != nil {
		if !errors.Is(err, domain.ErrCandidateListUnreadable) {
			err = fmt.Errorf("%w: %w", domain.ErrCandidateListUnreadable, err)
		}
		return domain.Failed(fmt.Sprintf("could not read password list: %v", err), err)
	}
	if candidates.IsEmpty() {
		return domain.Failed(domain.ErrEmptyCandidateList.Error(), domain.ErrEmptyCandidateList)
	}

	loaded := candidates.Len()
	if req.Enhance {
		candidates = s.enhancer.Enhance(candidates, req.Cap())
	}
	job.log.Info("Loaded %d candidates (%d after enhancement)", loaded, candidates.Len())

	archive := req.Archive()
	total := candidates.Len()
	job.setTotal(total)
	trialCtx := context.WithoutCancel(ctx)

	for i, candidate := range candidates {
		if job.isCancelled() || ctx.Err() != nil {
			return stopped(ctx, i, total)
		}

		index := i + 1
		job.setIndex(index)
		if !emit(domain.ProgressEvent{Index: index, Total: total, Candidate: candidate}) {
			// Cancelled while the consumer was busy; this candidate is
			// never tried.
			return stopped(ctx, i, total)
		}

		outcome := s.verifier.Verify(trialCtx, archive, candidate)
		switch outcome.Status {
		case domain.TrialAccepted:
			result := domain.Found(candidate)
			result.Attempts = index
			result.Total = total
			return result
		case domain.TrialRejected:
			// Expected; move on.
		case domain.TrialTransientError:
			job.log.Debug("Attempt %d/%d inconclusive: %s", index, total, outcome.Reason)
		default:
			err := fmt.Errorf("%w: %s at attempt %d", domain.ErrUnexpectedOutcome, outcome, index)
			result := domain.Failed(err.Error(), err)
			result.Attempts = index
			result.Total = total
			return result
		}
	}

	result := domain.Exhausted()
	result.Attempts = total
	result.Total = total
	return result
}

// stopped is the result of a cancelled run after attempts trials.
func stopped(ctx context.Context, attempts, total int) domain.RunResult {
	result := domain.Stopped()
	if ctx.Err() != nil {
		result.Err = fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
	}
	result.Attempts = attempts
	result.Total = total
	return result
}

// record appends the finished run to history. Failures are logged only.
func (s *CrackService) record(ctx context.Context, job *crackJob, result domain.RunResult) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, domain.NewRunRecord(job.id, job.req, result)); err != nil {
		job.log.Warn("Failed to record run: %v", err)
	}
}

// Ensure crackJob implements the interface.
var _ driving.Job = (*crackJob)(nil)

// crackJob is the state of one run. The candidate list, archive and
// iteration index belong to the job goroutine; callers only touch the
// cancellation flag and read snapshots.
type crackJob struct {
	id  string
	req domain.JobRequest
	log logger.Scope

	cancelled  atomic.Bool
	cancelOnce sync.Once
	cancelCh   chan struct{}

	events chan domain.JobEvent
	done   chan struct{}

	mu     sync.RWMutex
	state  domain.JobState
	index  int
	total  int
	result domain.RunResult
}

func newCrackJob(id string, req domain.JobRequest) *crackJob {
	return &crackJob{
		id:       id,
		req:      req,
		log:      logger.For("job " + id),
		cancelCh: make(chan struct{}),
		events:   make(chan domain.JobEvent),
		done:     make(chan struct{}),
		state:    domain.JobIdle,
	}
}

// ID identifies the job.
func (j *crackJob) ID() string {
	return j.id
}

// Events yields progress events then the result, then is closed.
func (j *crackJob) Events() <-chan domain.JobEvent {
	return j.events
}

// Cancel raises the cancellation flag. The job stops before its next
// trial; a trial already running is allowed to finish, so the latency
// is at most one verification.
func (j *crackJob) Cancel() {
	j.cancelled.Store(true)
	j.cancelOnce.Do(func() {
		close(j.cancelCh)
	})
}

// Done is closed once the job reaches a terminal state.
func (j *crackJob) Done() <-chan struct{} {
	return j.done
}

// Result returns the terminal result once Done is closed.
func (j *crackJob) Result() domain.RunResult {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result
}

// Status returns a snapshot of the job.
func (j *crackJob) Status() driving.JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return driving.JobStatus{
		ID:    j.id,
		State: j.state,
		Index: j.index,
		Total: j.total,
	}
}

func (j *crackJob) isCancelled() bool {
	return j.cancelled.Load()
}

func (j *crackJob) setTotal(total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.total = total
}

func (j *crackJob) setIndex(index int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.index = index
}

func (j *crackJob) transition(to domain.JobState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.state.CanTransitionTo(to) {
		// Programming error: the job loop is the only writer.
		panic(fmt.Sprintf("job %s: illegal transition %s -> %s", j.id, j.state, to))
	}
	j.state = to
}

// finish moves the job to the terminal state for result and closes Done.
func (j *crackJob) finish(result domain.RunResult) {
	state, err := domain.StateForOutcome(result.Outcome)
	if err != nil {
		panic(fmt.Sprintf("job %s: %v", j.id, err))
	}
	j.transition(state)

	j.mu.Lock()
	j.result = result
	j.mu.Unlock()
	close(j.done)
}

// publish hands a progress event to the consumer. Once the job is
// cancelled or its context ends, an undelivered event is dropped and
// publish reports false.
func (j *crackJob) publish(ctx context.Context, ev domain.ProgressEvent) bool {
	if j.isCancelled() || ctx.Err() != nil {
		return false
	}
	select {
	case j.events <- domain.JobEvent{Progress: &ev}:
		return true
	case <-j.cancelCh:
		return false
	case <-ctx.Done():
		return false
	}
}

// deliver sends the terminal result and closes the stream.
func (j *crackJob) deliver(result domain.RunResult) {
	j.events <- domain.JobEvent{Result: &result}
	close(j.events)
}
