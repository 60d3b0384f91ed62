package reciprocity

import (
	"context"
	"testing"
	"time"

	"follow-check/core/normalize"
	"follow-check/core/remote"
	"follow-check/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource scripts remote responses per call.
type fakeSource struct {
	calls     int
	responses []fakeResponse
}

type fakeResponse struct {
	handles []string
	err     error
}

func (s *fakeSource) next() ([]string, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		// Keep replaying the last scripted response.
		idx = len(s.responses) - 1
	}
	r := s.responses[idx]
	return r.handles, r.err
}

func (s *fakeSource) Followers(context.Context, string) ([]string, error) { return s.next() }
func (s *fakeSource) Following(context.Context, string) ([]string, error) { return s.next() }

func newTestFetcher(t *testing.T, source remote.Source) (*Fetcher, *snapshot.FileStore, *[]time.Duration) {
	t.Helper()
	store := snapshot.NewFileStore(t.TempDir())
	f := NewFetcher(source, store, zap.NewNop())

	var waits []time.Duration
	f.sleep = func(d time.Duration) { waits = append(waits, d) }
	return f, store, &waits
}

func TestFetch_SuccessWritesSnapshot(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{handles: []string{"@Alice", "bob"}}}}
	f, store, waits := newTestFetcher(t, source)

	res, err := f.Fetch(context.Background(), "me", remote.KindFollowers, 3, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	assert.Equal(t, []string{"alice", "bob"}, res.Set.Sorted())
	assert.Empty(t, *waits)

	// The normalized set landed in the snapshot store.
	snap, _, err := store.Get(context.Background(), "me", "followers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, snap.Sorted())
}

func TestFetch_BackoffScheduleIsLinear(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{err: remote.ErrRateLimited},
		{err: remote.ErrRateLimited},
		{err: remote.ErrRateLimited},
		{handles: []string{"alice"}},
	}}
	f, _, waits := newTestFetcher(t, source)

	res, err := f.Fetch(context.Background(), "me", remote.KindFollowers, 3, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second, 30 * time.Second}, *waits)
	assert.Equal(t, 4, source.calls)
}

func TestFetch_AttemptBudget(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrRateLimited}}}
	f, store, _ := newTestFetcher(t, source)

	// Snapshot present so exhaustion falls back instead of failing.
	seed := normalize.FromStrings([]string{"alice"})
	require.NoError(t, store.Put(context.Background(), "me", "followers", seed))

	_, err := f.Fetch(context.Background(), "me", remote.KindFollowers, 3, time.Millisecond)
	require.NoError(t, err)

	// No more than retries+1 total attempts.
	assert.Equal(t, 4, source.calls)
}

func TestFetch_FallbackReturnsStaleSnapshot(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrRateLimited}}}
	f, store, _ := newTestFetcher(t, source)

	require.NoError(t, store.Put(context.Background(), "x", "followers", normalize.FromStrings([]string{"alice", "bob"})))

	res, err := f.Fetch(context.Background(), "x", remote.KindFollowers, 1, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.False(t, res.CapturedAt.IsZero())
	assert.Equal(t, []string{"alice", "bob"}, res.Set.Sorted())
}

func TestFetch_UnavailableWithoutSnapshot(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrRateLimited}}}
	f, _, _ := newTestFetcher(t, source)

	_, err := f.Fetch(context.Background(), "x", remote.KindFollowers, 1, time.Millisecond)
	require.Error(t, err)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "x", unavailable.Account)
	assert.Equal(t, remote.KindFollowers, unavailable.Kind)
	assert.ErrorIs(t, err, remote.ErrRateLimited)
}

func TestFetch_AuthErrorNeverRetried(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrAuth}}}
	f, store, waits := newTestFetcher(t, source)

	require.NoError(t, store.Put(context.Background(), "me", "following", normalize.FromStrings([]string{"carol"})))

	res, err := f.Fetch(context.Background(), "me", remote.KindFollowing, 5, 10*time.Second)
	require.NoError(t, err)

	// One attempt, no sleeping, straight to fallback.
	assert.Equal(t, 1, source.calls)
	assert.Empty(t, *waits)
	assert.True(t, res.Stale)
	assert.Equal(t, []string{"carol"}, res.Set.Sorted())
}

func TestFetch_FallbackDoesNotMutateSnapshot(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrRateLimited}}}
	f, store, _ := newTestFetcher(t, source)

	require.NoError(t, store.Put(context.Background(), "me", "followers", normalize.FromStrings([]string{"alice"})))
	_, before, err := store.Get(context.Background(), "me", "followers")
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "me", remote.KindFollowers, 0, time.Millisecond)
	require.NoError(t, err)

	_, after, err := store.Get(context.Background(), "me", "followers")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
