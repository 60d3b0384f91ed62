package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"follow-check/core/normalize"
	"follow-check/core/storage"

	"github.com/minio/minio-go/v7"
)

// objectPrefix is the bucket prefix all snapshot documents live under.
const objectPrefix = "snapshots/"

// ObjectStore persists snapshots in an object storage bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	now    func() time.Time
}

// NewObjectStore creates a snapshot store backed by the given bucket,
// creating the bucket when it does not exist yet.
func NewObjectStore(ctx context.Context, client storage.Client, bucket string) (*ObjectStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return &ObjectStore{client: client, bucket: bucket, now: time.Now}, nil
}

// Put uploads the snapshot document for (account, kind). Object storage puts
// are atomic per key, so no temp-and-rename dance is needed here.
func (s *ObjectStore) Put(ctx context.Context, account, kind string, set normalize.Set) error {
	doc := document{
		GeneratedAt: s.now().UTC(),
		Account:     account,
		Kind:        kind,
		Usernames:   set.Sorted(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := objectPrefix + Key(account, kind)
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return nil
}

// Get downloads the snapshot document for (account, kind), returning
// ErrNotFound when the object does not exist.
func (s *ObjectStore) Get(ctx context.Context, account, kind string) (normalize.Set, time.Time, error) {
	name := objectPrefix + Key(account, kind)

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to fetch snapshot %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// Minio reports missing keys lazily on first read.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, time.Time{}, ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}

	return normalize.FromStrings(doc.Usernames), doc.GeneratedAt, nil
}
