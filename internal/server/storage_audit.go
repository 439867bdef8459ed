package server

import (
	"context"
	"sort"

	"luxe/internal/blobstore"
	"luxe/internal/models"
	"luxe/internal/store"
)

// AuditStore is the read surface the audit needs: every upload record and
// every product's media lists.
type AuditStore interface {
	ListStorageFiles(ctx context.Context) ([]models.StorageFile, error)
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
}

// AuditService reconciles uploaded blob metadata against the catalog's
// media references and groups unreferenced files by upload time for
// recovery.
type AuditService struct {
	store         AuditStore
	blobs         blobstore.BlobStore
	groupWindowMS int64
}

// AuditResult is the outcome of one reconciliation pass.
type AuditResult struct {
	Active   []models.ClassifiedFile
	Orphaned []models.ClassifiedFile
	Groups   [][]models.ClassifiedFile
	WindowMS int64
}

func NewAuditService(auditStore AuditStore, blobs blobstore.BlobStore, groupWindowMS int64) *AuditService {
	return &AuditService{store: auditStore, blobs: blobs, groupWindowMS: groupWindowMS}
}

// Run classifies every recorded upload and groups the orphaned ones.
// A windowMS of zero falls back to the configured default. The audit is a
// pure read; it never deletes or rewrites anything.
func (a *AuditService) Run(ctx context.Context, windowMS int64) (*AuditResult, error) {
	if windowMS <= 0 {
		windowMS = a.groupWindowMS
	}

	files, err := a.store.ListStorageFiles(ctx)
	if err != nil {
		return nil, err
	}
	products, err := a.store.ListProducts(ctx, store.ProductFilter{})
	if err != nil {
		return nil, err
	}

	classified := classifyFiles(ctx, files, a.blobs, usedMediaURLs(products))
	result := &AuditResult{
		Active:   make([]models.ClassifiedFile, 0, len(classified)),
		Orphaned: make([]models.ClassifiedFile, 0),
		WindowMS: windowMS,
	}
	for _, file := range classified {
		if file.IsActive() {
			result.Active = append(result.Active, file)
		} else {
			result.Orphaned = append(result.Orphaned, file)
		}
	}
	sortByUploadedAtDesc(result.Active)
	sortByUploadedAtDesc(result.Orphaned)
	result.Groups = groupByUploadTime(result.Orphaned, windowMS)
	return result, nil
}

// usedMediaURLs collects every image and video URL referenced by any
// product.
func usedMediaURLs(products []models.Product) map[string]struct{} {
	used := make(map[string]struct{})
	for _, product := range products {
		for _, url := range product.Images {
			used[url] = struct{}{}
		}
		for _, url := range product.Videos {
			used[url] = struct{}{}
		}
	}
	return used
}

// classifyFiles resolves a public URL for each file and marks it active
// only when that URL is referenced by a product. Every file comes back
// exactly once: files whose URL cannot be resolved, including resolver
// failures, are orphaned so recovery never misses one.
func classifyFiles(ctx context.Context, files []models.StorageFile, blobs blobstore.BlobStore, used map[string]struct{}) []models.ClassifiedFile {
	classified := make([]models.ClassifiedFile, 0, len(files))
	for _, file := range files {
		entry := models.ClassifiedFile{StorageFile: file, Status: models.StorageFileOrphaned}
		if blobs != nil {
			url, err := blobs.ResolveURL(ctx, file.ID, file.BlobKey)
			if err == nil && url != "" {
				entry.URL = url
				if _, ok := used[url]; ok {
					entry.Status = models.StorageFileActive
				}
			}
		}
		classified = append(classified, entry)
	}
	return classified
}

func sortByUploadedAtDesc(files []models.ClassifiedFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
}

// groupByUploadTime splits files into bursts of uploads. Files are
// chained into the current group while the gap to the previous file is
// within the window; a larger gap starts a new group. Groups come back
// newest first, files within a group oldest first.
func groupByUploadTime(files []models.ClassifiedFile, windowMS int64) [][]models.ClassifiedFile {
	groups := make([][]models.ClassifiedFile, 0)
	if len(files) == 0 {
		return groups
	}

	sorted := make([]models.ClassifiedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadedAt.Before(sorted[j].UploadedAt)
	})

	current := []models.ClassifiedFile{sorted[0]}
	for _, file := range sorted[1:] {
		previous := current[len(current)-1]
		gap := file.UploadedAt.Sub(previous.UploadedAt).Milliseconds()
		if gap <= windowMS {
			current = append(current, file)
			continue
		}
		groups = append(groups, current)
		current = []models.ClassifiedFile{file}
	}
	groups = append(groups, current)

	// Newest burst first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}
