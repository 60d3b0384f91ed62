// Package snapshot persists the last successfully fetched identifier set per
// (account, list-kind) pair.
//
// Snapshots are the fallback the resilient fetcher reads when the live
// platform keeps rate limiting: a degraded-but-usable last-known-good list
// together with its capture timestamp. A snapshot is overwritten on every
// successful fetch and never deleted automatically.
//
// # Backends
//
//   - FileStore: one JSON document per key under a configured directory.
//     The default, suitable for a local CLI run.
//   - ObjectStore: the same documents under a bucket prefix via the
//     core/storage client, for sharing snapshots across machines.
//
// Both backends use the stable composite key "<account>-<kind>-snapshot.json"
// with path separators sanitized out of the account name.
package snapshot
