package reciprocity

import (
	"context"
	"errors"
	"time"

	"follow-check/core/normalize"
	"follow-check/core/remote"
	"follow-check/core/snapshot"

	"go.uber.org/zap"
)

// FetchResult is one retrieved follow list. Stale marks a snapshot fallback;
// CapturedAt is the snapshot's capture time for stale results and the fetch
// time otherwise.
type FetchResult struct {
	Set        normalize.Set
	Stale      bool
	CapturedAt time.Time
}

// Fetcher wraps a remote.Source with bounded retries, linear backoff, and
// snapshot fallback.
type Fetcher struct {
	source remote.Source
	store  snapshot.Store
	logger *zap.Logger

	// sleep is swapped out in tests to observe the backoff schedule.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewFetcher creates a fetcher over the given source and snapshot store.
func NewFetcher(source remote.Source, store snapshot.Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		store:  store,
		logger: logger,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Fetch pulls one follow list. On success the normalized set overwrites the
// snapshot for (account, kind) and is returned fresh.
//
// Rate-limited attempts are retried up to retries times with a linear
// backoff of baseWait x attempt (at most retries+1 attempts total). Auth
// failures are never retried. When no live result can be had the snapshot
// is returned marked stale; with no snapshot either, the fetch fails with
// an UnavailableError.
func (f *Fetcher) Fetch(ctx context.Context, account string, kind remote.ListKind, retries int, baseWait time.Duration) (*FetchResult, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		raw, err := f.pull(ctx, account, kind)
		if err == nil {
			set := normalize.FromStrings(raw)
			if perr := f.store.Put(ctx, account, string(kind), set); perr != nil {
				// A failed snapshot write degrades future fallbacks but the
				// live result is still good.
				f.logger.Warn("Snapshot write failed",
					zap.String("account", account),
					zap.String("list", string(kind)),
					zap.Error(perr),
				)
			}
			return &FetchResult{Set: set, CapturedAt: f.now()}, nil
		}
		lastErr = err

		if !errors.Is(err, remote.ErrRateLimited) {
			// Auth and unexpected failures don't burn retry budget.
			break
		}
		if attempt > retries {
			break
		}

		wait := time.Duration(attempt) * baseWait
		f.logger.Warn("Rate limited, backing off",
			zap.String("account", account),
			zap.String("list", string(kind)),
			zap.Int("attempt", attempt),
			zap.Int("retries", retries),
			zap.Duration("wait", wait),
		)
		f.sleep(wait)
	}

	return f.fallback(ctx, account, kind, lastErr)
}

func (f *Fetcher) pull(ctx context.Context, account string, kind remote.ListKind) ([]string, error) {
	switch kind {
	case remote.KindFollowers:
		return f.source.Followers(ctx, account)
	default:
		return f.source.Following(ctx, account)
	}
}

// fallback reads the last-known-good snapshot. It never writes one.
func (f *Fetcher) fallback(ctx context.Context, account string, kind remote.ListKind, cause error) (*FetchResult, error) {
	set, capturedAt, err := f.store.Get(ctx, account, string(kind))
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return nil, &UnavailableError{Account: account, Kind: kind, Cause: cause}
		}
		return nil, &UnavailableError{Account: account, Kind: kind, Cause: errors.Join(cause, err)}
	}

	f.logger.Warn("Live fetch failed, using snapshot",
		zap.String("account", account),
		zap.String("list", string(kind)),
		zap.Time("captured_at", capturedAt),
		zap.NamedError("cause", cause),
	)
	return &FetchResult{Set: set, Stale: true, CapturedAt: capturedAt}, nil
}
