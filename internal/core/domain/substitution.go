package domain

// SubstitutionTable maps a single character to its ordered replacement
// strings. A table is read-only once built.
type SubstitutionTable struct {
	entries map[rune][]string
}

// NewSubstitutionTable builds a table from a mapping. The mapping is copied,
// so later changes to m do not affect the table. Characters with no
// replacements are dropped.
func NewSubstitutionTable(m map[rune][]string) SubstitutionTable {
	entries := make(map[rune][]string, len(m))
	for ch, reps := range m {
		if len(reps) == 0 {
			continue
		}
		entries[ch] = append([]string(nil), reps...)
	}
	return SubstitutionTable{entries: entries}
}

// Lookup returns the replacements for ch in table order.
// The returned slice must not be modified.
func (t SubstitutionTable) Lookup(ch rune) []string {
	return t.entries[ch]
}

// Has reports whether ch has any replacement.
func (t SubstitutionTable) Has(ch rune) bool {
	_, ok := t.entries[ch]
	return ok
}

// Len returns the number of substitutable characters.
func (t SubstitutionTable) Len() int {
	return len(t.entries)
}

var defaultSubstitutions = NewSubstitutionTable(map[rune][]string{
	'a': {"@", "4"},
	'e': {"3"},
	'i': {"1", "!"},
	'o': {"0"},
	's': {"$", "5"},
	't': {"7"},
	'l': {"1"},
	'g': {"9"},
	'b': {"8"},
})

// DefaultSubstitutions returns the process-wide substitution table.
func DefaultSubstitutions() SubstitutionTable {
	return defaultSubstitutions
}

var commonSuffixes = []string{"123", "!", "1", "12", "2024", "2025", "01"}

// CommonSuffixes returns the suffixes appended by the variant generator,
// in the order they are tried.
func CommonSuffixes() []string {
	return append([]string(nil), commonSuffixes...)
}

// DefaultVariantCap is the per-candidate variant limit used when none is
// configured.
const DefaultVariantCap = 50
