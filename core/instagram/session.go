package instagram

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"follow-check/core/remote"
)

// Session carries the cookies of an authenticated Instagram web session,
// exported by the user from their browser.
type Session struct {
	Username  string `json:"username"`
	UserID    string `json:"ds_user_id"`
	SessionID string `json:"sessionid"`
	CSRFToken string `json:"csrftoken"`
}

// SessionPath resolves the session file location for a login username,
// honoring an explicit configuration override.
func SessionPath(cfg Config, username string) string {
	if cfg.SessionFile != "" {
		return cfg.SessionFile
	}
	return filepath.Join("sessions", username+".json")
}

// LoadSession reads and validates a session file. A missing or incomplete
// session is an authentication failure, not a transient one.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no session file at %s (export your browser cookies there first): %w", path, remote.ErrAuth)
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session file %s: %w", path, err)
	}

	if sess.SessionID == "" || sess.CSRFToken == "" {
		return nil, fmt.Errorf("session file %s is missing sessionid or csrftoken: %w", path, remote.ErrAuth)
	}
	return &sess, nil
}
