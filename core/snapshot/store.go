package snapshot

import (
	"context"
	"errors"
	"strings"
	"time"

	"follow-check/core/normalize"
)

// ErrNotFound indicates no snapshot exists for the requested key.
var ErrNotFound = errors.New("snapshot not found")

// Store is a durable key-value mapping from (account, list-kind) to the last
// successful identifier set and its capture timestamp.
//
// Single-writer-per-key semantics are sufficient: the checker fetches lists
// sequentially, so implementations only need to keep an individual write
// atomic, not serialize concurrent writers.
type Store interface {
	// Put overwrites the snapshot for (account, kind) with the given set,
	// stamped with the current time.
	Put(ctx context.Context, account, kind string, set normalize.Set) error

	// Get returns the snapshot set and capture timestamp for (account, kind),
	// or ErrNotFound.
	Get(ctx context.Context, account, kind string) (normalize.Set, time.Time, error)
}

// document is the persisted snapshot payload, shared by all backends.
type document struct {
	GeneratedAt time.Time `json:"generated_at"`
	Account     string    `json:"account"`
	Kind        string    `json:"kind"`
	Usernames   []string  `json:"usernames"`
}

// Key derives the stable composite storage key for (account, kind).
// Path separators in the account name are sanitized so the key stays a
// single path component.
func Key(account, kind string) string {
	safe := strings.ReplaceAll(account, "/", "_")
	return safe + "-" + kind + "-snapshot.json"
}
