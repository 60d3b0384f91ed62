package reciprocity

import (
	"fmt"
	"strings"
)

// Render formats the report for humans. Listed accounts appear in
// lexicographic order so output is reproducible.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== SUMMARY: %s ===\n", r.Target)
	fmt.Fprintf(&b, "Followers: %d\n", r.Followers)
	fmt.Fprintf(&b, "Following: %d\n", r.Following)
	fmt.Fprintf(&b, "Not following you back: %d\n", len(r.NotFollowingBack))
	fmt.Fprintf(&b, "Following you, not followed back: %d\n", len(r.FansNotFollowedBack))

	if r.Stale {
		fmt.Fprintf(&b, "\nNOTE: live fetch unavailable; data from snapshot captured %s\n",
			r.CapturedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if len(r.NotFollowingBack) > 0 {
		b.WriteString("\nNot following you back:\n")
		for _, handle := range r.NotFollowingBack {
			fmt.Fprintf(&b, "- %s\n", handle)
		}
	}

	if len(r.FansNotFollowedBack) > 0 {
		b.WriteString("\nFollowing you, not followed back:\n")
		for _, handle := range r.FansNotFollowedBack {
			fmt.Fprintf(&b, "- %s\n", handle)
		}
	}

	return b.String()
}
