package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// ArchiveFormat identifies an archive family.
type ArchiveFormat string

// Supported archive families.
const (
	// FormatZIP covers ZIP archives with ZipCrypto or WinZip AES encryption.
	FormatZIP ArchiveFormat = "zip"

	// FormatRAR covers RAR 2.9, 3.x and 5.x archives.
	FormatRAR ArchiveFormat = "rar"

	// FormatUnknown is any extension without a family.
	FormatUnknown ArchiveFormat = "unknown"
)

// IsValid returns true if the format is a supported family.
func (f ArchiveFormat) IsValid() bool {
	switch f {
	case FormatZIP, FormatRAR:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ArchiveFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the family.
func (f ArchiveFormat) Description() string {
	switch f {
	case FormatZIP:
		return "ZIP archive"
	case FormatRAR:
		return "RAR archive"
	default:
		return unknownDescription
	}
}

// SupportedFormats lists every supported archive family.
func SupportedFormats() []ArchiveFormat {
	return []ArchiveFormat{FormatZIP, FormatRAR}
}

// ParseArchiveFormat parses a format name such as "zip" or ".RAR".
func ParseArchiveFormat(s string) (ArchiveFormat, error) {
	f := ArchiveFormat(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if !f.IsValid() {
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// FormatFromExtension maps a file extension (with or without the dot,
// any case) to its family.
func FormatFromExtension(ext string) ArchiveFormat {
	f, err := ParseArchiveFormat(ext)
	if err != nil {
		return FormatUnknown
	}
	return f
}

// ArchiveReference is an archive path and the family used to verify it.
// It is resolved once when a job starts and not changed afterwards.
type ArchiveReference struct {
	// Path is the archive location on disk.
	Path string

	// Format is the family the archive is verified as.
	Format ArchiveFormat

	// Ext is the original extension, kept for diagnostics when the
	// format is unknown.
	Ext string
}

// NewArchiveReference derives the format from the path's extension.
func NewArchiveReference(path string) ArchiveReference {
	ext := filepath.Ext(path)
	return ArchiveReference{
		Path:   path,
		Format: FormatFromExtension(ext),
		Ext:    ext,
	}
}

// WithFormat returns a copy of the reference verified as format f.
func (r ArchiveReference) WithFormat(f ArchiveFormat) ArchiveReference {
	r.Format = f
	return r
}

// Recognised reports whether the format is a supported family.
func (r ArchiveReference) Recognised() bool {
	return r.Format.IsValid()
}
