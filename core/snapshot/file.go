package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"follow-check/core/normalize"
)

// FileStore persists snapshots as JSON files under a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a snapshot store rooted at dir. The directory is
// created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

// Put writes the snapshot for (account, kind). The document is written to a
// temp file and renamed into place so a reader never observes a partial
// snapshot.
func (s *FileStore) Put(_ context.Context, account, kind string, set normalize.Set) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	doc := document{
		GeneratedAt: s.now().UTC(),
		Account:     account,
		Kind:        kind,
		Usernames:   set.Sorted(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(s.dir, Key(account, kind))
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Get reads the snapshot for (account, kind), returning ErrNotFound when the
// file does not exist.
func (s *FileStore) Get(_ context.Context, account, kind string) (normalize.Set, time.Time, error) {
	path := filepath.Join(s.dir, Key(account, kind))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	return normalize.FromStrings(doc.Usernames), doc.GeneratedAt, nil
}
