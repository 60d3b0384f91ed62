// Package instagram implements the remote.Source capability against the
// authenticated Instagram web API.
//
// The adapter is deliberately thin: it reuses a browser session the user
// exports to a local JSON file (sessionid, csrftoken, ds_user_id cookies),
// pages through the follower/following endpoints of the logged-in web app,
// and classifies throttling and session failures into the remote package's
// sentinel errors. All retry, backoff, and snapshot-fallback policy lives in
// the reciprocity fetcher, not here.
//
// Instagram throttles this surface aggressively ("Please wait a few
// minutes", 401s, feedback_required). When that happens the pull fails with
// remote.ErrRateLimited and the caller decides whether to wait or fall back;
// the offline export mode avoids the problem entirely.
package instagram
