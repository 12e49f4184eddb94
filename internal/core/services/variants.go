package services

import (
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// variantPassWidth is how many leading set members the suffix and
// capitalization passes build on.
const variantPassWidth = 5

// VariantGenerator derives plausible password variants from one candidate.
// Generation is deterministic: the same candidate, table and cap always
// yield the same set in the same order.
type VariantGenerator struct {
	table    domain.SubstitutionTable
	suffixes []string
}

// NewVariantGenerator creates a generator using table for substitutions.
func NewVariantGenerator(table domain.SubstitutionTable) *VariantGenerator {
	return &VariantGenerator{
		table:    table,
		suffixes: domain.CommonSuffixes(),
	}
}

// NewDefaultVariantGenerator creates a generator with the process-wide table.
func NewDefaultVariantGenerator() *VariantGenerator {
	return NewVariantGenerator(domain.DefaultSubstitutions())
}

// Generate returns at most variantCap variants of candidate, the candidate
// itself first. A cap below 1 is treated as 1.
func (g *VariantGenerator) Generate(candidate string, variantCap int) domain.VariantSet {
	if variantCap < 1 {
		variantCap = 1
	}

	set := newVariantAccumulator(variantCap)
	set.add(candidate)
	if candidate == "" {
		return domain.VariantSet(set.items)
	}

	g.substitute(set, candidate)
	g.appendSuffixes(set)
	capitalize(set)

	return domain.VariantSet(set.items)
}

// substitute replaces one character position at a time, left to right,
// once per replacement string.
func (g *VariantGenerator) substitute(set *variantAccumulator, candidate string) {
	for i, ch := range candidate {
		reps := g.table.Lookup(ch)
		if len(reps) == 0 {
			continue
		}
		_, width := utf8.DecodeRuneInString(candidate[i:])
		for _, rep := range reps {
			if set.full() {
				return
			}
			set.add(candidate[:i] + rep + candidate[i+width:])
		}
	}
}

func (g *VariantGenerator) appendSuffixes(set *variantAccumulator) {
	for _, base := range set.head(variantPassWidth) {
		for _, suffix := range g.suffixes {
			if set.full() {
				return
			}
			set.add(base + suffix)
		}
	}
}

func capitalize(set *variantAccumulator) {
	for _, base := range set.head(variantPassWidth) {
		if set.full() {
			return
		}
		first, width := utf8.DecodeRuneInString(base)
		if width == 0 || !unicode.IsLower(first) {
			continue
		}
		set.add(string(unicode.ToUpper(first)) + base[width:])
	}
}

// variantAccumulator is an insertion-ordered set with a hard size limit.
type variantAccumulator struct {
	limit int
	items []string
	seen  map[string]struct{}
}

func newVariantAccumulator(limit int) *variantAccumulator {
	return &variantAccumulator{
		limit: limit,
		items: make([]string, 0, limit),
		seen:  make(map[string]struct{}, limit),
	}
}

func (a *variantAccumulator) full() bool {
	return len(a.items) >= a.limit
}

func (a *variantAccumulator) add(v string) {
	if a.full() {
		return
	}
	if _, ok := a.seen[v]; ok {
		return
	}
	a.seen[v] = struct{}{}
	a.items = append(a.items, v)
}

// head returns a copy of the first n items.
func (a *variantAccumulator) head(n int) []string {
	if n > len(a.items) {
		n = len(a.items)
	}
	return append([]string(nil), a.items[:n]...)
}

// ListEnhancer expands a candidate list with generated variants.
type ListEnhancer struct {
	generator *VariantGenerator
}

// NewListEnhancer creates an enhancer backed by generator.
func NewListEnhancer(generator *VariantGenerator) *ListEnhancer {
	if generator == nil {
		generator = NewDefaultVariantGenerator()
	}
	return &ListEnhancer{generator: generator}
}

// Enhance returns the input list followed by every new variant of each
// candidate, in candidate order then generation order. A variant already
// present anywhere in the output is not repeated.
func (e *ListEnhancer) Enhance(list domain.CandidateList, variantCap int) domain.CandidateList {
	out := make(domain.CandidateList, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, c := range list {
		out = append(out, c)
		seen[c] = struct{}{}
	}

	for _, c := range list {
		for _, v := range e.generator.Generate(c, variantCap) {
			if v == c {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
