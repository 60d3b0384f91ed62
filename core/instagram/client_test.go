package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"follow-check/core/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		cfg:     Config{UserAgent: "test-agent", PageSize: 2},
		http:    srv.Client(),
		session: &Session{Username: "me", UserID: "1", SessionID: "s", CSRFToken: "c"},
		baseURL: srv.URL,
		logger:  zap.NewNop(),
	}
}

func TestFollowers_Paginates(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/web_profile_info/":
			assert.Equal(t, "target", r.URL.Query().Get("username"))
			fmt.Fprint(w, `{"data":{"user":{"id":"42"}}}`)
		case r.URL.Path == "/friendships/42/followers/":
			if r.URL.Query().Get("max_id") == "" {
				fmt.Fprint(w, `{"users":[{"username":"Alice"},{"username":"bob"}],"next_max_id":"p2"}`)
			} else {
				assert.Equal(t, "p2", r.URL.Query().Get("max_id"))
				fmt.Fprint(w, `{"users":[{"username":"carol"}],"next_max_id":""}`)
			}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	handles, err := client.Followers(context.Background(), "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "bob", "carol"}, handles)
}

func TestPull_SendsSessionCookies(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, err := r.Cookie("sessionid")
		require.NoError(t, err)
		assert.Equal(t, "s", sid.Value)
		assert.Equal(t, "c", r.Header.Get("X-CSRFToken"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		if r.URL.Path == "/users/web_profile_info/" {
			fmt.Fprint(w, `{"data":{"user":{"id":"42"}}}`)
			return
		}
		fmt.Fprint(w, `{"users":[],"next_max_id":""}`)
	}))

	_, err := client.Following(context.Background(), "target")
	require.NoError(t, err)
}

func TestPull_RateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"429", http.StatusTooManyRequests, `{"message":"slow down"}`},
		{"bare 401", http.StatusUnauthorized, `{}`},
		{"please wait body", http.StatusBadRequest, `{"message":"Please wait a few minutes before you try again."}`},
		{"feedback required", http.StatusForbidden, `{"message":"feedback_required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			_, err := client.Followers(context.Background(), "target")
			assert.ErrorIs(t, err, remote.ErrRateLimited)
		})
	}
}

func TestPull_AuthError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"nope"}`)
	}))

	_, err := client.Followers(context.Background(), "target")
	assert.ErrorIs(t, err, remote.ErrAuth)
}

func TestLoadSession(t *testing.T) {
	t.Run("missing file is an auth failure", func(t *testing.T) {
		_, err := LoadSession(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, remote.ErrAuth)
	})

	t.Run("incomplete session is an auth failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"username":"me"}`), 0o600))

		_, err := LoadSession(path)
		assert.ErrorIs(t, err, remote.ErrAuth)
	})

	t.Run("valid session", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		data, _ := json.Marshal(Session{Username: "me", UserID: "1", SessionID: "s", CSRFToken: "c"})
		require.NoError(t, os.WriteFile(path, data, 0o600))

		sess, err := LoadSession(path)
		require.NoError(t, err)
		assert.Equal(t, "me", sess.Username)
	})
}

func TestSessionPath(t *testing.T) {
	assert.Equal(t, "custom.json", SessionPath(Config{SessionFile: "custom.json"}, "me"))
	assert.Equal(t, filepath.Join("sessions", "me.json"), SessionPath(Config{}, "me"))
}
