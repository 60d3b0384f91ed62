// Package reciprocity determines which accounts do not follow back.
//
// It hosts the checker core: the resilient fetcher that pulls follow lists
// from a rate-limited remote with linear backoff and snapshot fallback, the
// set reconciler that turns two identifier sets into a reciprocity report,
// and the formatter that renders the report for humans.
//
// # Channels
//
// Three input channels feed the same reconciler:
//   - api: live lists via an injected remote.Source, with retry/backoff and
//     snapshot fallback
//   - offline: Instagram export JSON files, zero remote calls
//   - paste: line- or comma-delimited blobs submitted through the web UI
//
// # HTTP Endpoints
//
//   - GET  /           : paste form
//   - POST /check      : form submission, rendered text report
//   - POST /api/check  : JSON request/response
//   - GET  /api/history: recent recorded runs for a target (requires DB)
package reciprocity
