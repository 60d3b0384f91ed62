package normalize

import "sort"

// Set is a deduplicated collection of canonical identifiers.
type Set map[string]struct{}

// NewSet creates an empty Set.
func NewSet() Set {
	return make(Set)
}

// Add canonicalizes raw and inserts it. Entries that canonicalize to the
// empty string are dropped silently.
func (s Set) Add(raw string) {
	if handle, ok := Handle(raw); ok {
		s[handle] = struct{}{}
	}
}

// Contains reports whether the set holds the given canonical identifier.
func (s Set) Contains(handle string) bool {
	_, ok := s[handle]
	return ok
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int {
	return len(s)
}

// Diff returns the members of s that are not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for handle := range s {
		if !other.Contains(handle) {
			out[handle] = struct{}{}
		}
	}
	return out
}

// Sorted returns the identifiers in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for handle := range s {
		out = append(out, handle)
	}
	sort.Strings(out)
	return out
}
