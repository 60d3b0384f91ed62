package reciprocity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"follow-check/core/history"
	"follow-check/core/normalize"
	"follow-check/core/remote"
	"follow-check/core/snapshot"

	"go.uber.org/zap"
)

// Source labels for produced reports.
const (
	SourceAPI     = "api"
	SourceOffline = "offline"
	SourcePaste   = "paste"
)

// ErrNoRemote indicates an api-channel run was requested without a remote
// source wired in.
var ErrNoRemote = errors.New("no remote source configured")

// Service orchestrates the three input channels into reciprocity reports.
type Service struct {
	fetcher  *Fetcher
	store    snapshot.Store
	recorder *history.Recorder
	logger   *zap.Logger
}

// NewService creates the reciprocity service. source may be nil when only
// the offline and paste channels are needed; store may be nil for a
// paste-only service; recorder is optional.
func NewService(source remote.Source, store snapshot.Store, recorder *history.Recorder, logger *zap.Logger) *Service {
	s := &Service{store: store, recorder: recorder, logger: logger}
	if source != nil && store != nil {
		s.fetcher = NewFetcher(source, store, logger)
	}
	return s
}

// RunAPI produces a report from live lists, fetching followers then
// following sequentially so the backoff schedule stays predictable and the
// rate-limit pressure is not doubled.
func (s *Service) RunAPI(ctx context.Context, target string, retries int, baseWait time.Duration) (*Report, error) {
	if s.fetcher == nil {
		return nil, ErrNoRemote
	}

	followers, err := s.fetcher.Fetch(ctx, target, remote.KindFollowers, retries, baseWait)
	if err != nil {
		return nil, err
	}
	following, err := s.fetcher.Fetch(ctx, target, remote.KindFollowing, retries, baseWait)
	if err != nil {
		return nil, err
	}

	report := Reconcile(followers.Set, following.Set)
	report.Target = target
	report.Source = SourceAPI
	if followers.Stale || following.Stale {
		report.Stale = true
		report.CapturedAt = oldestStale(followers, following)
	}

	s.record(ctx, report)
	return report, nil
}

// RunOffline produces a report from Instagram export JSON files. The parsed
// sets are persisted as snapshots so a later rate-limited api run has a
// fallback.
func (s *Service) RunOffline(ctx context.Context, followersFile, followingFile, target string) (*Report, error) {
	followers, err := readExport(followersFile)
	if err != nil {
		return nil, err
	}
	following, err := readExport(followingFile)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.Put(ctx, target, string(remote.KindFollowers), followers); err != nil {
			s.logger.Warn("Snapshot write failed", zap.String("list", "followers"), zap.Error(err))
		}
		if err := s.store.Put(ctx, target, string(remote.KindFollowing), following); err != nil {
			s.logger.Warn("Snapshot write failed", zap.String("list", "following"), zap.Error(err))
		}
	}

	report := Reconcile(followers, following)
	report.Target = target
	report.Source = SourceOffline

	s.record(ctx, report)
	return report, nil
}

// RunPaste produces a report from pasted text blobs. Pasted lists are
// treated as ephemeral and never persisted as snapshots.
func (s *Service) RunPaste(ctx context.Context, followersText, followingText, target string) *Report {
	report := Reconcile(normalize.FromText(followersText), normalize.FromText(followingText))
	report.Target = target
	report.Source = SourcePaste

	s.record(ctx, report)
	return report
}

// History returns the most recent recorded runs for a target.
func (s *Service) History(ctx context.Context, target string, limit int) ([]history.Run, error) {
	if s.recorder == nil {
		return nil, errors.New("history recording is not enabled")
	}
	return s.recorder.Recent(ctx, target, limit)
}

// record persists the report summary when a recorder is wired. Recording
// failures never fail a run.
func (s *Service) record(ctx context.Context, report *Report) {
	if s.recorder == nil {
		return
	}

	err := s.recorder.Record(ctx, history.Run{
		Target:              report.Target,
		Source:              report.Source,
		Followers:           report.Followers,
		Following:           report.Following,
		NotFollowingBack:    len(report.NotFollowingBack),
		FansNotFollowedBack: len(report.FansNotFollowedBack),
		Stale:               report.Stale,
	})
	if err != nil {
		s.logger.Warn("Failed to record run history", zap.Error(err))
	}
}

func readExport(path string) (normalize.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer f.Close()

	set, err := normalize.FromExport(f)
	if err != nil {
		return nil, fmt.Errorf("export file %s: %w", path, err)
	}
	return set, nil
}

// oldestStale picks the oldest capture timestamp among stale results.
func oldestStale(results ...*FetchResult) time.Time {
	var oldest time.Time
	for _, r := range results {
		if !r.Stale {
			continue
		}
		if oldest.IsZero() || r.CapturedAt.Before(oldest) {
			oldest = r.CapturedAt
		}
	}
	return oldest
}
