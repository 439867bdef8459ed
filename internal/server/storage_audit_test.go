package server

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"luxe/internal/blobstore"
	"luxe/internal/models"
)

// stubBlobs resolves URLs from a fixed map and can be told to fail.
type stubBlobs struct {
	urls    map[string]string
	failAll bool
}

func (s *stubBlobs) Put(ctx context.Context, r io.Reader) (blobstore.BlobPutResult, error) {
	return blobstore.BlobPutResult{}, errors.New("not implemented")
}

func (s *stubBlobs) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *stubBlobs) ResolveURL(ctx context.Context, fileID, key string) (string, error) {
	if s.failAll {
		return "", errors.New("resolver unavailable")
	}
	return s.urls[fileID], nil
}

func fileAt(id string, offsetMS int64) models.StorageFile {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.StorageFile{
		ID:         id,
		SizeBytes:  10,
		BlobKey:    "sha256/" + id,
		UploadedAt: base.Add(time.Duration(offsetMS) * time.Millisecond),
	}
}

func classifiedAt(id string, offsetMS int64) models.ClassifiedFile {
	return models.ClassifiedFile{StorageFile: fileAt(id, offsetMS), Status: models.StorageFileOrphaned}
}

func groupIDs(groups [][]models.ClassifiedFile) [][]string {
	out := make([][]string, 0, len(groups))
	for _, group := range groups {
		ids := make([]string, 0, len(group))
		for _, file := range group {
			ids = append(ids, file.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestClassifyFilesEveryFileClassifiedOnce(t *testing.T) {
	files := []models.StorageFile{
		fileAt("fl-aaaa", 0),
		fileAt("fl-bbbb", 1000),
		fileAt("fl-cccc", 2000),
	}
	blobs := &stubBlobs{urls: map[string]string{
		"fl-bbbb": "http://127.0.0.1:7420/v1/files/fl-bbbb",
		"fl-cccc": "http://127.0.0.1:7420/v1/files/fl-cccc",
	}}
	used := map[string]struct{}{
		"http://127.0.0.1:7420/v1/files/fl-bbbb": {},
	}

	classified := classifyFiles(context.Background(), files, blobs, used)
	if len(classified) != len(files) {
		t.Fatalf("expected %d classified files, got %d", len(files), len(classified))
	}

	byID := map[string]models.ClassifiedFile{}
	for _, file := range classified {
		byID[file.ID] = file
	}
	if byID["fl-bbbb"].Status != models.StorageFileActive {
		t.Fatalf("expected fl-bbbb active, got %s", byID["fl-bbbb"].Status)
	}
	if byID["fl-bbbb"].URL == "" {
		t.Fatal("expected resolved url for active file")
	}
	// Resolvable but referenced by no product: orphaned, URL kept for
	// recovery display.
	if byID["fl-cccc"].Status != models.StorageFileOrphaned {
		t.Fatalf("expected unreferenced fl-cccc orphaned, got %s", byID["fl-cccc"].Status)
	}
	if byID["fl-cccc"].URL == "" {
		t.Fatal("expected resolved url kept on orphaned file")
	}
	if byID["fl-aaaa"].Status != models.StorageFileOrphaned {
		t.Fatalf("expected unresolvable fl-aaaa orphaned, got %s", byID["fl-aaaa"].Status)
	}
}

func TestClassifyFilesResolverFailureMeansOrphaned(t *testing.T) {
	files := []models.StorageFile{fileAt("fl-aaaa", 0)}
	classified := classifyFiles(context.Background(), files, &stubBlobs{failAll: true}, map[string]struct{}{})

	if len(classified) != 1 {
		t.Fatalf("expected 1 classified file, got %d", len(classified))
	}
	if classified[0].Status != models.StorageFileOrphaned {
		t.Fatalf("expected orphaned on resolver failure, got %s", classified[0].Status)
	}
	if classified[0].URL != "" {
		t.Fatalf("expected empty url, got %q", classified[0].URL)
	}
}

func TestGroupByUploadTimeChainsWithinWindow(t *testing.T) {
	// Consecutive gaps of 240s each chain into one group under a 300s
	// window even though first-to-last exceeds the window.
	files := []models.ClassifiedFile{
		classifiedAt("fl-aaaa", 0),
		classifiedAt("fl-bbbb", 240000),
		classifiedAt("fl-cccc", 480000),
		classifiedAt("fl-dddd", 720000),
	}

	groups := groupByUploadTime(files, 300000)
	got := groupIDs(groups)
	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d: %v", len(got), got)
	}
	want := []string{"fl-aaaa", "fl-bbbb", "fl-cccc", "fl-dddd"}
	for i, id := range want {
		if got[0][i] != id {
			t.Fatalf("expected ascending order %v, got %v", want, got[0])
		}
	}
}

func TestGroupByUploadTimeSplitsOnGapNewestFirst(t *testing.T) {
	files := []models.ClassifiedFile{
		classifiedAt("fl-aaaa", 0),
		classifiedAt("fl-bbbb", 100000),
		classifiedAt("fl-cccc", 1000000),
	}

	groups := groupIDs(groupByUploadTime(files, 300000))
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(groups), groups)
	}
	if len(groups[0]) != 1 || groups[0][0] != "fl-cccc" {
		t.Fatalf("expected newest group first, got %v", groups)
	}
	if len(groups[1]) != 2 || groups[1][0] != "fl-aaaa" || groups[1][1] != "fl-bbbb" {
		t.Fatalf("expected older group ascending, got %v", groups)
	}
}

func TestGroupByUploadTimeEmptyInput(t *testing.T) {
	groups := groupByUploadTime(nil, 300000)
	if groups == nil {
		t.Fatal("expected non-nil empty group list")
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupByUploadTimeInputOrderIrrelevant(t *testing.T) {
	shuffled := []models.ClassifiedFile{
		classifiedAt("fl-cccc", 1000000),
		classifiedAt("fl-aaaa", 0),
		classifiedAt("fl-bbbb", 100000),
	}

	groups := groupIDs(groupByUploadTime(shuffled, 300000))
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", groups)
	}
	if groups[1][0] != "fl-aaaa" || groups[1][1] != "fl-bbbb" {
		t.Fatalf("expected sorted grouping regardless of input order, got %v", groups)
	}
}

func TestAuditRunPartitionsFiles(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	// One upload with real blob bytes, one record pointing at nothing.
	uploaded, uploadedURL, err := srv.storage.Upload(ctx, strings.NewReader("hello"), "text/plain", time.Now().UTC())
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := srv.catalog.Create(ctx, &models.Product{
		Name:     "Aviator Pro",
		Price:    2999,
		Category: "goggles",
		Images:   []string{uploadedURL},
		InStock:  true,
	}, time.Now().UTC()); err != nil {
		t.Fatalf("create product: %v", err)
	}

	id, err := srv.store.NewStorageFileID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	ghost := fileAt(id, 0)
	if err := srv.store.InsertStorageFile(ctx, &ghost); err != nil {
		t.Fatalf("insert ghost: %v", err)
	}

	result, err := srv.audit.Run(ctx, 0)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if result.WindowMS != 300000 {
		t.Fatalf("expected configured window, got %d", result.WindowMS)
	}
	if len(result.Active) != 1 || result.Active[0].ID != uploaded.ID {
		t.Fatalf("expected one active file %s, got %+v", uploaded.ID, result.Active)
	}
	if len(result.Orphaned) != 1 || result.Orphaned[0].ID != ghost.ID {
		t.Fatalf("expected one orphaned file %s, got %+v", ghost.ID, result.Orphaned)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected one orphan group, got %d", len(result.Groups))
	}
}

func TestAuditRunOrphansNewestFirst(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	for i, id := range []string{"aaaa", "bbbb", "cccc"} {
		ghost := fileAt("fl-"+id, int64(i)*1000000)
		if err := srv.store.InsertStorageFile(ctx, &ghost); err != nil {
			t.Fatalf("insert ghost: %v", err)
		}
	}

	result, err := srv.audit.Run(ctx, 0)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(result.Orphaned) != 3 {
		t.Fatalf("expected 3 orphans, got %d", len(result.Orphaned))
	}
	for i, want := range []string{"fl-cccc", "fl-bbbb", "fl-aaaa"} {
		if result.Orphaned[i].ID != want {
			t.Fatalf("expected descending upload order, got %+v", result.Orphaned)
		}
	}
	if len(result.Groups) != 3 || result.Groups[0][0].ID != "fl-cccc" {
		t.Fatalf("expected newest group first, got %v", groupIDs(result.Groups))
	}
}
