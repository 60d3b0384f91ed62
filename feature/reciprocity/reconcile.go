package reciprocity

import (
	"time"

	"follow-check/core/normalize"
)

// Report is the reciprocity result for one account at one point in time.
// It is derived fresh per invocation and never persisted (only its summary
// counts go to the optional history database).
type Report struct {
	// Target is the account the report is about.
	Target string `json:"target"`
	// Source names the input channel: api, offline, or paste.
	Source string `json:"source"`

	// Followers and Following are the post-normalization cardinalities of
	// the two input sets.
	Followers int `json:"followers"`
	Following int `json:"following"`

	// NotFollowingBack lists accounts the target follows that do not follow
	// back, in lexicographic order.
	NotFollowingBack []string `json:"not_following_back"`
	// FansNotFollowedBack lists accounts that follow the target but are not
	// followed back, in lexicographic order.
	FansNotFollowedBack []string `json:"fans_not_followed_back"`

	// Stale is set when at least one input list came from a snapshot
	// fallback rather than a live fetch; CapturedAt then holds the oldest
	// capture timestamp involved.
	Stale      bool      `json:"stale"`
	CapturedAt time.Time `json:"captured_at,omitempty"`
}

// Reconcile computes the reciprocity report from two normalized sets.
// Pure set algebra: the result is invariant under input ordering and under
// duplicates in the raw pre-normalization sources.
func Reconcile(followers, following normalize.Set) *Report {
	return &Report{
		Followers:           followers.Len(),
		Following:           following.Len(),
		NotFollowingBack:    following.Diff(followers).Sorted(),
		FansNotFollowedBack: followers.Diff(following).Sorted(),
	}
}
