// Package remote defines the capability contract for pulling follow lists
// from the live platform.
//
// The checker core never talks to Instagram directly; it consumes a Source,
// an injectable interface that a concrete adapter (core/instagram) or a test
// fake implements. Adapters translate transport-level failures into the two
// sentinel errors defined here, which is all the retry logic needs to know.
package remote

import (
	"context"
	"errors"
)

// ListKind identifies which side of the follow graph a list represents.
type ListKind string

const (
	// KindFollowers is the list of accounts following the subject.
	KindFollowers ListKind = "followers"
	// KindFollowing is the list of accounts the subject follows.
	KindFollowing ListKind = "following"
)

// ErrRateLimited indicates the platform throttled the request. Retryable
// with backoff.
var ErrRateLimited = errors.New("rate limited by remote platform")

// ErrAuth indicates the session is missing, invalid, or expired. Never
// retried; the caller goes straight to snapshot fallback.
var ErrAuth = errors.New("remote session rejected")

// Source pulls raw follow lists for an account. Implementations return
// handles as the platform serves them; canonicalization happens downstream.
type Source interface {
	// Followers returns the accounts following the given account.
	Followers(ctx context.Context, account string) ([]string, error)

	// Following returns the accounts the given account follows.
	Following(ctx context.Context, account string) ([]string, error)
}
