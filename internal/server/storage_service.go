package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"luxe/internal/blobstore"
	"luxe/internal/models"
	"luxe/internal/store"
)

// StorageService records uploads in the blob store and serves them back.
type StorageService struct {
	store store.StorageStore
	blobs blobstore.BlobStore
}

func NewStorageService(storageStore store.StorageStore, blobs blobstore.BlobStore) *StorageService {
	return &StorageService{store: storageStore, blobs: blobs}
}

// Upload stores the blob bytes and records the file metadata.
func (s *StorageService) Upload(ctx context.Context, r io.Reader, contentType string, now time.Time) (*models.StorageFile, string, error) {
	if s.blobs == nil {
		return nil, "", internalError(fmt.Errorf("blob store not configured"))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	put, err := s.blobs.Put(ctx, r)
	if err != nil {
		return nil, "", blobFailure(err)
	}

	id, err := s.store.NewStorageFileID()
	if err != nil {
		return nil, "", err
	}
	file := &models.StorageFile{
		ID:          id,
		ContentType: contentType,
		SizeBytes:   put.SizeBytes,
		SHA256:      put.SHA256,
		BlobKey:     put.BlobKey,
		UploadedAt:  now,
	}
	if err := s.store.InsertStorageFile(ctx, file); err != nil {
		return nil, "", err
	}

	url, err := s.blobs.ResolveURL(ctx, file.ID, file.BlobKey)
	if err != nil {
		url = ""
	}
	return file, url, nil
}

// Open returns the metadata and blob reader for one uploaded file.
func (s *StorageService) Open(ctx context.Context, id string) (*models.StorageFile, io.ReadCloser, error) {
	file, err := s.store.GetStorageFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return nil, nil, notFoundCode(fmt.Errorf("file %s not found", id), ErrCodeFileNotFound)
	}
	if s.blobs == nil {
		return nil, nil, internalError(fmt.Errorf("blob store not configured"))
	}
	rc, err := s.blobs.Open(ctx, file.BlobKey)
	if err != nil {
		return nil, nil, notFoundCode(fmt.Errorf("file %s has no blob", id), ErrCodeFileNotFound)
	}
	return file, rc, nil
}
