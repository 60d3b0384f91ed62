// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the snapshot store needs: ensuring the bucket exists, uploading
// snapshot documents, and reading them back. The abstraction supports both
// AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := client.PutObject(ctx, "followcheck", "snapshots/me-followers-snapshot.json",
//		reader, size, minio.PutObjectOptions{ContentType: "application/json"})
package storage
