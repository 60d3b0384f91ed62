package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"follow-check/core/remote"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://www.instagram.com/api/v1"

	// App id of the Instagram web client; required on API requests made
	// with web-session cookies.
	webAppID = "936619743392459"
)

// rateLimitHints are response fragments that indicate throttling rather
// than a dead session.
var rateLimitHints = []string{
	"please wait a few minutes",
	"401 unauthorized",
	"feedback_required",
	"rate limit",
}

// Client pulls follow lists over the authenticated Instagram web API.
// It implements remote.Source.
type Client struct {
	cfg     Config
	http    *http.Client
	session *Session
	baseURL string
	logger  *zap.Logger
}

// NewClient loads the session for the given login username and returns a
// ready client. A missing session fails with remote.ErrAuth.
func NewClient(cfg Config, username string, logger *zap.Logger) (*Client, error) {
	sess, err := LoadSession(SessionPath(cfg, username))
	if err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		session: sess,
		baseURL: defaultBaseURL,
		logger:  logger,
	}, nil
}

// Followers returns the accounts following the given account.
func (c *Client) Followers(ctx context.Context, account string) ([]string, error) {
	return c.pull(ctx, account, "followers")
}

// Following returns the accounts the given account follows.
func (c *Client) Following(ctx context.Context, account string) ([]string, error) {
	return c.pull(ctx, account, "following")
}

func (c *Client) pull(ctx context.Context, account, list string) ([]string, error) {
	id, err := c.lookupUserID(ctx, account)
	if err != nil {
		return nil, err
	}

	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var handles []string
	maxID := ""
	for {
		page, next, err := c.friendshipPage(ctx, id, list, pageSize, maxID)
		if err != nil {
			return nil, err
		}
		handles = append(handles, page...)
		if next == "" {
			break
		}
		maxID = next
	}

	c.logger.Debug("Pulled follow list",
		zap.String("account", account),
		zap.String("list", list),
		zap.Int("count", len(handles)),
	)
	return handles, nil
}

// lookupUserID resolves an account name to its numeric id via the web
// profile endpoint.
func (c *Client) lookupUserID(ctx context.Context, account string) (string, error) {
	endpoint := fmt.Sprintf("%s/users/web_profile_info/?username=%s", c.baseURL, url.QueryEscape(account))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("profile lookup for %s: %w", account, err)
	}

	var resp struct {
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode profile response for %s: %w", account, err)
	}
	if resp.Data.User.ID == "" {
		return "", fmt.Errorf("account %s not found or not visible to this session", account)
	}
	return resp.Data.User.ID, nil
}

// friendshipPage fetches one page of a follower/following list.
func (c *Client) friendshipPage(ctx context.Context, userID, list string, count int, maxID string) ([]string, string, error) {
	endpoint := fmt.Sprintf("%s/friendships/%s/%s/?count=%s", c.baseURL, userID, list, strconv.Itoa(count))
	if maxID != "" {
		endpoint += "&max_id=" + url.QueryEscape(maxID)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("%s page: %w", list, err)
	}

	var resp struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
		NextMaxID string `json:"next_max_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to decode %s page: %w", list, err)
	}

	handles := make([]string, 0, len(resp.Users))
	for _, u := range resp.Users {
		handles = append(handles, u.Username)
	}
	return handles, resp.NextMaxID, nil
}

// get performs an authenticated GET and classifies failures into the remote
// error taxonomy.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-IG-App-ID", webAppID)
	req.Header.Set("X-CSRFToken", c.session.CSRFToken)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.session.SessionID})
	req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.session.CSRFToken})
	if c.session.UserID != "" {
		req.AddCookie(&http.Cookie{Name: "ds_user_id", Value: c.session.UserID})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, classify(resp.StatusCode, body)
}

// classify maps an HTTP failure to the remote error taxonomy. Instagram
// reports throttling as 429, as 401 with a "please wait" style body, or as
// feedback_required payloads; everything else on 401/403 means the session
// is gone.
func classify(status int, body []byte) error {
	lowered := strings.ToLower(string(body))

	for _, hint := range rateLimitHints {
		if strings.Contains(lowered, hint) {
			return fmt.Errorf("http %d: %w", status, remote.ErrRateLimited)
		}
	}

	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("http 429: %w", remote.ErrRateLimited)
	case http.StatusUnauthorized:
		// Bare 401s on this surface are throttling in disguise.
		return fmt.Errorf("http 401: %w", remote.ErrRateLimited)
	case http.StatusForbidden:
		return fmt.Errorf("http 403: %w", remote.ErrAuth)
	}

	if strings.Contains(lowered, "login_required") || strings.Contains(lowered, "checkpoint_required") {
		return fmt.Errorf("http %d: session no longer valid: %w", status, remote.ErrAuth)
	}
	return fmt.Errorf("unexpected http %d from remote", status)
}
