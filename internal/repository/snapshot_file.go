package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/shikshahq/school-console-api/internal/store"
	"github.com/shikshahq/school-console-api/pkg/storage"
)

// FileSnapshotRepository keeps each snapshot blob as <key>.json on disk.
// This is the default backend and the closest match to the source system's
// key-value persistence.
type FileSnapshotRepository struct {
	files *storage.LocalStorage
}

// NewFileSnapshotRepository builds a file-backed snapshot repository.
func NewFileSnapshotRepository(files *storage.LocalStorage) *FileSnapshotRepository {
	return &FileSnapshotRepository{files: files}
}

// Load reads the blob for key, returning store.ErrNotFound when absent.
func (r *FileSnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	data, err := r.files.Read(key + ".json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save writes the blob for key atomically.
func (r *FileSnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	if _, err := r.files.Save(key+".json", data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}
