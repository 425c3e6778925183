package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage persists files on disk under a base directory. It backs both
// the file snapshot repository and rendered export documents.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the given bytes to the provided relative path under the base
// dir. Writes go through a temp file and rename so a crash never leaves a
// half-written snapshot behind.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare data directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publish data file: %w", err)
	}
	return filename, nil
}

// Read returns the stored bytes for the given relative path.
func (s *LocalStorage) Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(filename))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists reports whether the file is present.
func (s *LocalStorage) Exists(filename string) bool {
	_, err := os.Stat(s.resolve(filename))
	return err == nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(filename string) error {
	if err := os.Remove(s.resolve(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete data file: %w", err)
	}
	return nil
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

func (s *LocalStorage) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
