package store

import (
	"context"
	"testing"
	"time"

	"luxe/internal/models"
)

func TestStorageFileInsertAndList(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	file := &models.StorageFile{
		ID:          "fl-ab12",
		ContentType: "image/jpeg",
		SizeBytes:   20480,
		SHA256:      "deadbeef",
		BlobKey:     "sha256/deadbeef",
		UploadedAt:  now,
	}
	if err := st.InsertStorageFile(ctx, file); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := st.GetStorageFile(ctx, "fl-ab12")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ContentType != "image/jpeg" || got.SizeBytes != 20480 {
		t.Fatalf("unexpected file: %+v", got)
	}
	if !got.UploadedAt.Equal(now) {
		t.Fatalf("uploaded_at mismatch: %v vs %v", got.UploadedAt, now)
	}

	files, err := st.ListStorageFiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	if got, err := st.GetStorageFile(ctx, "fl-none"); err != nil || got != nil {
		t.Fatalf("expected nil for missing file, got %+v err %v", got, err)
	}
}
