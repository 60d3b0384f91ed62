// Package normalize turns heterogeneous raw input into canonical identifier sets.
//
// The checker accepts handles from three channels: the live API (plain string
// lists), the paste UI (line- or comma-delimited blobs, possibly profile URLs),
// and Instagram export files (JSON records with nested value/href fields). All
// three funnel through this package so parsing rules exist exactly once.
//
// # Canonical Form
//
// A canonical identifier is a lowercase handle with no leading '@', no URL
// scheme/host/path, and no surrounding whitespace. Empty or whitespace-only
// entries are dropped silently; duplicates collapse into one set member.
//
// # Usage
//
//	set := normalize.FromText("@Alice, bob\nhttps://instagram.com/carol/")
//	set.Sorted() // [alice bob carol]
//
// All constructors are pure: same input, same set, regardless of ordering.
package normalize
