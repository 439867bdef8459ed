package blobstore

import (
	"context"
	"io"
)

// BlobPutResult describes one persisted blob payload.
type BlobPutResult struct {
	SHA256    string
	SizeBytes int64
	BlobKey   string
}

// BlobStore is the byte-storage abstraction behind uploaded media. ResolveURL
// returns the public URL for a stored file, or "" when the backend cannot
// produce one yet; callers treat an empty URL as unresolvable, never as an
// error.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader) (BlobPutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	ResolveURL(ctx context.Context, fileID, key string) (string, error)
}
