package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const minioContentType = "application/octet-stream"

// MinioOptions configures the S3 backend.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL overrides the constructed object URL, for deployments
	// that front the bucket with a CDN.
	PublicBaseURL string
}

// MinioStore keeps blob bytes in an S3-compatible bucket. Objects are keyed
// by content digest so repeated uploads of the same payload collapse.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore creates the S3 backend and verifies the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", opts.Bucket)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/")
	if baseURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
	}

	return &MinioStore{client: client, bucket: opts.Bucket, baseURL: baseURL}, nil
}

// Put spools the payload to a temp file to compute its digest and size, then
// uploads under a digest key.
func (m *MinioStore) Put(ctx context.Context, r io.Reader) (BlobPutResult, error) {
	var zero BlobPutResult
	if m == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}

	tmp, err := os.CreateTemp("", "luxe-put-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		return zero, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return zero, err
	}

	digest := hex.EncodeToString(h.Sum(nil))
	key := casAlgorithmPrefix + "/" + digest

	if _, err := m.client.PutObject(ctx, m.bucket, key, tmp, n, minio.PutObjectOptions{
		ContentType: minioContentType,
	}); err != nil {
		return zero, fmt.Errorf("put object %q: %w", key, err)
	}

	return BlobPutResult{SHA256: digest, SizeBytes: n, BlobKey: key}, nil
}

// Open returns a reader for one stored object.
func (m *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if m == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("blob key is required")
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return obj, nil
}

// ResolveURL returns the stable public object URL.
func (m *MinioStore) ResolveURL(ctx context.Context, fileID, key string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil
	}
	return m.baseURL + "/" + key, nil
}

var (
	_ BlobStore = (*LocalCAS)(nil)
	_ BlobStore = (*MinioStore)(nil)
)
