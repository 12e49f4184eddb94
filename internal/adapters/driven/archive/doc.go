// Package archive verifies password candidates against encrypted archives.
//
// Verifier dispatches on the archive format to one driven.FormatVerifier
// per family:
//   - ZipVerifier: ZipCrypto and WinZip AES via github.com/yeka/zip
//   - RarVerifier: RAR 1.5 to 5 via github.com/nwaples/rardecode/v2
//
// Throttled wraps any driven.ArchiveVerifier with a rate limit.
//
// A verifier never reports Accepted unless the archive decrypted and its
// integrity check passed. Failures unrelated to the password, such as a
// missing file or a file that is not an archive at all, are reported as
// TransientError so a job keeps going.
package archive
