package normalize

import "strings"

// Handle canonicalizes a single raw token: surrounding whitespace and a
// leading '@' are stripped, profile URLs are reduced to their trailing path
// component, and the result is lowercased. The second return value is false
// when nothing usable remains.
func Handle(raw string) (string, bool) {
	h := strings.TrimSpace(raw)

	// Reduce profile URLs (with or without scheme) to the trailing path
	// component: "https://instagram.com/alice/" -> "alice".
	if i := strings.Index(h, "://"); i >= 0 {
		h = h[i+len("://"):]
	}
	h = strings.TrimRight(h, "/")
	if i := strings.LastIndex(h, "/"); i >= 0 {
		h = h[i+1:]
	}

	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(h, "@")
	h = strings.ToLower(h)

	if h == "" {
		return "", false
	}
	return h, true
}

// FromStrings builds a Set from a raw list of handles, as returned by the
// live API channel.
func FromStrings(raw []string) Set {
	set := NewSet()
	for _, r := range raw {
		set.Add(r)
	}
	return set
}

// FromText builds a Set from a pasted blob. Entries may be separated by
// newlines, commas, or both.
func FromText(text string) Set {
	set := NewSet()
	for _, line := range strings.Split(text, "\n") {
		for _, token := range strings.Split(line, ",") {
			set.Add(token)
		}
	}
	return set
}
