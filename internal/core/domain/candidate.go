package domain

// CandidateList is an ordered sequence of password candidates.
// Order is trial order. Lists built by a CandidateSource or the
// enhancer never contain the same value twice.
type CandidateList []string

// Len returns the number of candidates.
func (l CandidateList) Len() int {
	return len(l)
}

// IsEmpty reports whether there is nothing to try.
func (l CandidateList) IsEmpty() bool {
	return len(l) == 0
}

// Contains reports whether candidate is in the list by exact value.
func (l CandidateList) Contains(candidate string) bool {
	for _, c := range l {
		if c == candidate {
			return true
		}
	}
	return false
}

// Dedupe returns a copy of the list with later duplicates removed.
// First-seen order is preserved.
func (l CandidateList) Dedupe() CandidateList {
	seen := make(map[string]struct{}, len(l))
	out := make(CandidateList, 0, len(l))
	for _, c := range l {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// VariantSet is the capped set of candidates derived from one source
// candidate. The source candidate is always element zero.
type VariantSet []string

// Source returns the candidate the set was derived from.
func (v VariantSet) Source() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// MaskCandidate hides a candidate for display, keeping only its length.
func MaskCandidate(candidate string) string {
	n := len([]rune(candidate))
	if n == 0 {
		return ""
	}
	masked := make([]rune, n)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked)
}
