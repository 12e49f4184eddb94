package archive

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure Verifier implements the interface.
var _ driven.ArchiveVerifier = (*Verifier)(nil)

// Verifier routes each trial to the FormatVerifier registered for the
// archive's format.
type Verifier struct {
	mu       sync.RWMutex
	families map[domain.ArchiveFormat]driven.FormatVerifier
}

// NewVerifier creates a verifier with the given families registered.
func NewVerifier(families ...driven.FormatVerifier) *Verifier {
	v := &Verifier{families: make(map[domain.ArchiveFormat]driven.FormatVerifier)}
	for _, f := range families {
		v.Register(f)
	}
	return v
}

// NewDefaultVerifier creates a verifier for every built-in family.
func NewDefaultVerifier() *Verifier {
	return NewVerifier(NewZipVerifier(), NewRarVerifier())
}

// Register adds or replaces the verifier for f.Format().
func (v *Verifier) Register(f driven.FormatVerifier) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.families[f.Format()] = f
}

// Supports reports whether format has a registered verifier.
func (v *Verifier) Supports(format domain.ArchiveFormat) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.families[format]
	return ok
}

// Formats lists the registered formats in name order.
func (v *Verifier) Formats() []domain.ArchiveFormat {
	v.mu.RLock()
	defer v.mu.RUnlock()
	formats := make([]domain.ArchiveFormat, 0, len(v.families))
	for f := range v.families {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Verify tries candidate against archive.
func (v *Verifier) Verify(ctx context.Context, archive domain.ArchiveReference, candidate string) domain.TrialOutcome {
	// Archive passwords are UTF-8; anything else cannot match.
	if !utf8.ValidString(candidate) {
		return domain.Rejected("password is not valid UTF-8")
	}

	v.mu.RLock()
	family, ok := v.families[archive.Format]
	v.mu.RUnlock()
	if !ok {
		return domain.TransientError("unsupported archive format")
	}

	if err := ctx.Err(); err != nil {
		return domain.TransientError(fmt.Sprintf("verify: %v", err))
	}
	return family.Verify(ctx, archive.Path, candidate)
}
