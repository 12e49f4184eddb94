package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure FileSource implements the interface.
var _ driven.CandidateSource = (*FileSource)(nil)

// FileSource loads candidates from a newline-separated text file.
//
// The whole file is read up front. Lines are trimmed, blank lines and
// repeats are dropped, and the first occurrence of a candidate fixes its
// position. Input is decoded as UTF-8: a leading byte order mark is
// stripped and malformed bytes become U+FFFD rather than failing the load.
type FileSource struct{}

// NewFileSource creates a file-backed candidate source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load reads the list at path. Open and read failures wrap
// domain.ErrCandidateListUnreadable.
func (s *FileSource) Load(path string) (domain.CandidateList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCandidateListUnreadable, err)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCandidateListUnreadable, path, err)
	}
	return list, nil
}

// Parse decodes a password list from r.
func Parse(r io.Reader) (domain.CandidateList, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := bufio.NewReader(transform.NewReader(r, decoder))

	list := domain.CandidateList{}
	seen := make(map[string]struct{})
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if candidate := strings.TrimSpace(line); candidate != "" {
			if _, dup := seen[candidate]; !dup {
				seen[candidate] = struct{}{}
				list = append(list, candidate)
			}
		}

		if errors.Is(err, io.EOF) {
			return list, nil
		}
	}
}
