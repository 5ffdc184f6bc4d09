package store

import "strings"

// Matcher decides whether a session's subject label refers to the same
// topic as a stored record's label. Implementations receive raw labels and
// are responsible for their own normalization.
type Matcher interface {
	Match(label, stored string) bool
}

// SubstringMatcher matches when normalized labels are equal or either
// contains the other. This is the historical heuristic of the tracker; it
// is order-dependent and can over-merge short labels ("Java" matches
// "JavaScript Programming"), which is why the strategy sits behind an
// interface.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(label, stored string) bool {
	a := normalize(label)
	b := normalize(stored)
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// ExactMatcher matches only on normalized equality.
type ExactMatcher struct{}

func (ExactMatcher) Match(label, stored string) bool {
	return normalize(label) == normalize(stored)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
