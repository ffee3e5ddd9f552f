// Package storage provides read access to S3-compatible object stores.
// Seed datasets are streamed from here; nothing is written back.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrBucketNotFound is returned when the configured bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a read-only, S3-compatible object storage client interface.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	// The caller must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
