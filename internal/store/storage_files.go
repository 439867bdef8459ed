package store

import (
	"context"
	"database/sql"
	"fmt"

	"luxe/internal/models"
)

// StorageFileExists reports whether a storage file id is taken.
func (s *Store) StorageFileExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM storage_files WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewStorageFileID generates an unused storage file id.
func (s *Store) NewStorageFileID() (string, error) {
	return GenerateID("fl", s.StorageFileExists)
}

// InsertStorageFile records metadata for one uploaded blob. Rows are never
// updated afterwards.
func (s *Store) InsertStorageFile(ctx context.Context, file *models.StorageFile) error {
	if file == nil {
		return fmt.Errorf("storage file is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage_files (id, content_type, size_bytes, sha256, blob_key, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		file.ID,
		file.ContentType,
		file.SizeBytes,
		file.SHA256,
		file.BlobKey,
		formatTime(file.UploadedAt),
	)
	return err
}

// GetStorageFile returns one storage file by id, or nil when missing.
func (s *Store) GetStorageFile(ctx context.Context, id string) (*models.StorageFile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_type, size_bytes, sha256, blob_key, uploaded_at
		FROM storage_files WHERE id = ?
	`, id)
	return scanStorageFile(row)
}

// ListStorageFiles returns every storage file. The audit sorts as it needs.
func (s *Store) ListStorageFiles(ctx context.Context) ([]models.StorageFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_type, size_bytes, sha256, blob_key, uploaded_at
		FROM storage_files
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]models.StorageFile, 0)
	for rows.Next() {
		file, err := scanStorageFile(rows)
		if err != nil {
			return nil, err
		}
		if file == nil {
			continue
		}
		files = append(files, *file)
	}
	return files, rows.Err()
}

func scanStorageFile(scanner interface {
	Scan(dest ...any) error
}) (*models.StorageFile, error) {
	var file models.StorageFile
	var uploadedAt string

	if err := scanner.Scan(
		&file.ID,
		&file.ContentType,
		&file.SizeBytes,
		&file.SHA256,
		&file.BlobKey,
		&uploadedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if file.UploadedAt, err = parseTime(uploadedAt); err != nil {
		return nil, err
	}
	return &file, nil
}
