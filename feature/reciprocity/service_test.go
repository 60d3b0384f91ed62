package reciprocity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"follow-check/core/remote"
	"follow-check/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeExportFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunOffline_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	followersFile := writeExportFile(t, dir, "followers_1.json",
		`[{"string_list_data":[{"value":"alice"}]},{"string_list_data":[{"value":"bob"}]}]`)
	followingFile := writeExportFile(t, dir, "following.json",
		`{"relationships_following":[{"string_list_data":[{"value":"bob"}]},{"string_list_data":[{"value":"carol"}]}]}`)

	store := snapshot.NewFileStore(t.TempDir())
	svc := NewService(nil, store, nil, zap.NewNop())

	report, err := svc.RunOffline(context.Background(), followersFile, followingFile, "me")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Followers)
	assert.Equal(t, 2, report.Following)
	assert.Equal(t, []string{"carol"}, report.NotFollowingBack)
	assert.Equal(t, []string{"alice"}, report.FansNotFollowedBack)
	assert.Equal(t, SourceOffline, report.Source)
	assert.False(t, report.Stale)

	// Offline runs seed the snapshot store for later api fallbacks.
	snap, _, err := store.Get(context.Background(), "me", "followers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, snap.Sorted())
}

func TestRunOffline_ToleratesMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	followersFile := writeExportFile(t, dir, "followers_1.json",
		`[{"string_list_data":[{"value":"alice"}]},{"string_list_data":[{"timestamp":1}]},{"string_list_data":[{"value":"bob"}]}]`)
	followingFile := writeExportFile(t, dir, "following.json",
		`[{"string_list_data":[{"value":"bob"}]}]`)

	svc := NewService(nil, nil, nil, zap.NewNop())

	report, err := svc.RunOffline(context.Background(), followersFile, followingFile, "me")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Followers)
	assert.Equal(t, []string{"alice"}, report.FansNotFollowedBack)
}

func TestRunOffline_MissingFile(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())

	_, err := svc.RunOffline(context.Background(), "/nonexistent/followers.json", "/nonexistent/following.json", "me")
	assert.Error(t, err)
}

func TestRunAPI(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{handles: []string{"alice", "bob"}}, // followers
		{handles: []string{"bob", "carol"}}, // following
	}}
	store := snapshot.NewFileStore(t.TempDir())
	svc := NewService(source, store, nil, zap.NewNop())

	report, err := svc.RunAPI(context.Background(), "me", 3, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, SourceAPI, report.Source)
	assert.Equal(t, []string{"carol"}, report.NotFollowingBack)
	assert.Equal(t, []string{"alice"}, report.FansNotFollowedBack)
	assert.False(t, report.Stale)
}

func TestRunAPI_StaleWhenOneListFallsBack(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{handles: []string{"alice", "bob"}}, // followers succeed
		{err: remote.ErrRateLimited},        // following always throttled
	}}
	store := snapshot.NewFileStore(t.TempDir())

	// Seed a following snapshot for the fallback.
	seedSvc := NewService(nil, store, nil, zap.NewNop())
	dir := t.TempDir()
	followersFile := writeExportFile(t, dir, "followers.json", `[{"string_list_data":[{"value":"alice"}]}]`)
	followingFile := writeExportFile(t, dir, "following.json", `[{"string_list_data":[{"value":"bob"}]}]`)
	_, err := seedSvc.RunOffline(context.Background(), followersFile, followingFile, "me")
	require.NoError(t, err)

	svc := NewService(source, store, nil, zap.NewNop())
	svc.fetcher.sleep = func(time.Duration) {}

	report, err := svc.RunAPI(context.Background(), "me", 1, time.Second)
	require.NoError(t, err)

	assert.True(t, report.Stale)
	assert.False(t, report.CapturedAt.IsZero())
	assert.Equal(t, 2, report.Followers) // live list
	assert.Equal(t, 1, report.Following) // snapshot list
}

func TestRunAPI_UnavailableWithoutSnapshot(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{{err: remote.ErrRateLimited}}}
	store := snapshot.NewFileStore(t.TempDir())
	svc := NewService(source, store, nil, zap.NewNop())
	svc.fetcher.sleep = func(time.Duration) {}

	_, err := svc.RunAPI(context.Background(), "me", 1, time.Second)

	var unavailable *UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestRunAPI_NoRemote(t *testing.T) {
	svc := NewService(nil, snapshot.NewFileStore(t.TempDir()), nil, zap.NewNop())

	_, err := svc.RunAPI(context.Background(), "me", 1, time.Second)
	assert.ErrorIs(t, err, ErrNoRemote)
}

func TestRunPaste(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())

	report := svc.RunPaste(context.Background(), "@Alice\nbob", "bob, carol", "me")

	assert.Equal(t, SourcePaste, report.Source)
	assert.Equal(t, 2, report.Followers)
	assert.Equal(t, 2, report.Following)
	assert.Equal(t, []string{"carol"}, report.NotFollowingBack)
	assert.Equal(t, []string{"alice"}, report.FansNotFollowedBack)
}

func TestHistory_Disabled(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())

	_, err := svc.History(context.Background(), "me", 10)
	assert.Error(t, err)
}
