package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts where uploaded event images live. Implementations
// must return a durable public URL for each stored object.
type ObjectStorage interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, key, contentType string, size int64, r io.Reader) (string, error)
	// Remove deletes the object; missing objects are not an error.
	Remove(ctx context.Context, key string) error
}
