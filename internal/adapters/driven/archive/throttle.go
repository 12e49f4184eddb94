package archive

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure Throttled implements the interface.
var _ driven.ArchiveVerifier = (*Throttled)(nil)

// Throttled limits how often the wrapped verifier is called.
type Throttled struct {
	next    driven.ArchiveVerifier
	limiter *rate.Limiter
}

// NewThrottled allows at most perSecond trials per second through to next.
func NewThrottled(next driven.ArchiveVerifier, perSecond float64) *Throttled {
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Throttle wraps next when perSecond is positive and returns it unchanged
// otherwise.
func Throttle(next driven.ArchiveVerifier, perSecond float64) driven.ArchiveVerifier {
	if perSecond <= 0 {
		return next
	}
	return NewThrottled(next, perSecond)
}

// Verify waits for the limiter, then delegates. A wait cut short by ctx
// is a TransientError.
func (t *Throttled) Verify(ctx context.Context, archive domain.ArchiveReference, candidate string) domain.TrialOutcome {
	if err := t.limiter.Wait(ctx); err != nil {
		return domain.TransientError(fmt.Sprintf("throttle: %v", err))
	}
	return t.next.Verify(ctx, archive, candidate)
}
