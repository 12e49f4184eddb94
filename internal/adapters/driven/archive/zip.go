package archive

import (
	"context"
	"fmt"

	"github.com/yeka/zip"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure ZipVerifier implements the interface.
var _ driven.FormatVerifier = (*ZipVerifier)(nil)

// ZipVerifier checks passwords against ZIP archives protected with
// ZipCrypto or WinZip AES.
type ZipVerifier struct{}

// NewZipVerifier creates a ZIP verifier.
func NewZipVerifier() *ZipVerifier {
	return &ZipVerifier{}
}

// Format returns domain.FormatZIP.
func (v *ZipVerifier) Format() domain.ArchiveFormat {
	return domain.FormatZIP
}

// Verify decrypts the first encrypted file with data in the archive and
// reads it through, which validates the CRC (ZipCrypto) or the HMAC (AES).
// An archive without encrypted files accepts any password. One whose
// encrypted files are all empty proves nothing and rejects every password.
func (v *ZipVerifier) Verify(ctx context.Context, path, password string) domain.TrialOutcome {
	r, err := zip.OpenReader(path)
	if err != nil {
		return domain.TransientError(fmt.Sprintf("open zip: %v", err))
	}
	defer r.Close()

	entry, encrypted := firstEncrypted(r.File)
	if entry == nil {
		if encrypted {
			return domain.Rejected("no encrypted data to verify")
		}
		return domain.Accepted()
	}

	entry.SetPassword(password)
	rc, err := entry.Open()
	if err != nil {
		return domain.Rejected(fmt.Sprintf("open %s: %v", entry.Name, err))
	}
	defer rc.Close()

	if err := drain(ctx, rc); err != nil {
		if ctx.Err() != nil {
			return domain.TransientError(fmt.Sprintf("verify: %v", ctx.Err()))
		}
		return domain.Rejected(fmt.Sprintf("read %s: %v", entry.Name, err))
	}
	return domain.Accepted()
}

// firstEncrypted returns the first encrypted file holding data, and
// whether the archive has any encrypted file at all. An empty entry has
// no CRC or MAC worth checking, so most wrong passwords read it cleanly.
func firstEncrypted(files []*zip.File) (*zip.File, bool) {
	encrypted := false
	for _, f := range files {
		if f.FileInfo().IsDir() || !f.IsEncrypted() {
			continue
		}
		encrypted = true
		if f.UncompressedSize64 > 0 {
			return f, true
		}
	}
	return nil, encrypted
}
