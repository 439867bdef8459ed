package models

import "time"

// StorageFileStatus classifies a stored file by catalog usage.
type StorageFileStatus string

const (
	StorageFileActive   StorageFileStatus = "active"
	StorageFileOrphaned StorageFileStatus = "orphaned"
)

// StorageFile is the metadata row for one uploaded blob.
type StorageFile struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	SHA256      string    `json:"sha256"`
	BlobKey     string    `json:"blob_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ClassifiedFile is a storage file annotated with its resolved URL and its
// usage status. URL is empty when the blob could not be resolved.
type ClassifiedFile struct {
	StorageFile
	URL    string            `json:"url"`
	Status StorageFileStatus `json:"status"`
}

// IsActive reports whether the file is referenced by the catalog.
func (c *ClassifiedFile) IsActive() bool {
	return c.Status == StorageFileActive
}
