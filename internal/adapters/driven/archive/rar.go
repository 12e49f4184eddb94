package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/nwaples/rardecode/v2"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure RarVerifier implements the interface.
var _ driven.FormatVerifier = (*RarVerifier)(nil)

// RarVerifier checks passwords against RAR archives, including
// multi-volume sets and archives with encrypted headers.
type RarVerifier struct{}

// NewRarVerifier creates a RAR verifier.
func NewRarVerifier() *RarVerifier {
	return &RarVerifier{}
}

// Format returns domain.FormatRAR.
func (v *RarVerifier) Format() domain.ArchiveFormat {
	return domain.FormatRAR
}

// Verify opens the archive with password and reads the first regular file
// with data through. RAR reports a wrong password in several ways
// depending on the version, so any failure past opening the file is
// Rejected. Empty files carry nothing to check and are skipped.
func (v *RarVerifier) Verify(ctx context.Context, path, password string) domain.TrialOutcome {
	r, err := rardecode.OpenReader(path, rardecode.Password(password))
	if err != nil {
		if isStructural(err) {
			return domain.TransientError(fmt.Sprintf("open rar: %v", err))
		}
		return domain.Rejected(fmt.Sprintf("open rar: %v", err))
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			return domain.Rejected("archive contains no file data")
		}
		if err != nil {
			return domain.Rejected(fmt.Sprintf("read header: %v", err))
		}
		if hdr.IsDir || hdr.UnPackedSize == 0 {
			continue
		}

		if err := drain(ctx, r); err != nil {
			if ctx.Err() != nil {
				return domain.TransientError(fmt.Sprintf("verify: %v", ctx.Err()))
			}
			return domain.Rejected(fmt.Sprintf("read %s: %v", hdr.Name, err))
		}
		return domain.Accepted()
	}
}

// isStructural reports errors that say nothing about the password: the
// file could not be opened or is not a RAR archive.
func isStructural(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) || errors.Is(err, rardecode.ErrNoSig)
}
