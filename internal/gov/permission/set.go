package permission

import (
	"sort"
	"strings"
)

// Set is an effective permission set.
type Set map[string]struct{}

func (s Set) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s Set) HasAll(codes []string) bool {
	for _, c := range codes {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

func (s Set) HasAny(codes []string) bool {
	for _, c := range codes {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// MatchesPattern supports trailing-wildcard matching ("users:*"). It matches
// against the resolved set, not the catalog, so a wildcard only succeeds if
// the admin actually holds some permission under that resource. A pattern
// without a wildcard is an exact membership test.
func (s Set) MatchesPattern(pattern string) bool {
	if !strings.HasSuffix(pattern, ":*") {
		return s.Has(pattern)
	}
	prefix := strings.TrimSuffix(pattern, "*")
	for p := range s {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Sorted returns the set as a sorted slice for stable API responses.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
