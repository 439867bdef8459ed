package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestLocalCASPutOpen(t *testing.T) {
	cas, err := NewLocalCAS(t.TempDir(), "http://127.0.0.1:7420")
	if err != nil {
		t.Fatalf("new local cas: %v", err)
	}

	first, err := cas.Put(context.Background(), bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("put first: %v", err)
	}
	if first.SHA256 == "" || first.BlobKey == "" {
		t.Fatalf("unexpected put result: %#v", first)
	}
	if first.SizeBytes != 5 {
		t.Fatalf("expected 5 bytes, got %d", first.SizeBytes)
	}

	second, err := cas.Put(context.Background(), bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("put second: %v", err)
	}
	if first.BlobKey != second.BlobKey || first.SHA256 != second.SHA256 {
		t.Fatalf("expected dedupe keys/digests to match: first=%#v second=%#v", first, second)
	}

	rc, err := cas.Open(context.Background(), first.BlobKey)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", string(data))
	}
}

func TestLocalCASResolveURL(t *testing.T) {
	cas, err := NewLocalCAS(t.TempDir(), "http://127.0.0.1:7420/")
	if err != nil {
		t.Fatalf("new local cas: %v", err)
	}

	put, err := cas.Put(context.Background(), bytes.NewBufferString("payload"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	url, err := cas.ResolveURL(context.Background(), "fl-ab12", put.BlobKey)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "http://127.0.0.1:7420/v1/files/fl-ab12" {
		t.Fatalf("unexpected url %q", url)
	}

	// missing blob bytes resolve to "" rather than an error
	url, err = cas.ResolveURL(context.Background(), "fl-gone", "sha256/ab/cd/abcd")
	if err != nil {
		t.Fatalf("resolve missing: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url for missing blob, got %q", url)
	}
}

func TestLocalCASResolveURLWithoutBase(t *testing.T) {
	cas, err := NewLocalCAS(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new local cas: %v", err)
	}

	put, err := cas.Put(context.Background(), bytes.NewBufferString("payload"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	url, err := cas.ResolveURL(context.Background(), "fl-ab12", put.BlobKey)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url without a public base, got %q", url)
	}
}

func TestLocalCASRejectsBadKeys(t *testing.T) {
	cas, err := NewLocalCAS(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new local cas: %v", err)
	}

	for _, key := range []string{"", "/abs/path", "../escape", "sha256/../../etc/passwd"} {
		if _, err := cas.Open(context.Background(), key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
