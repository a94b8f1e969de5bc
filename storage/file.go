package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists values as individual files in a directory with
// restrictive permissions. Writes are atomic (temporary file plus rename)
// and deletes overwrite the file with zeros first as a best-effort measure
// against recovery from disk.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key)
}

// Read returns the file contents for key, or false when the file does not
// exist.
func (f *FileStore) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Write atomically replaces the file for key.
func (f *FileStore) Write(key string, data []byte) error {
	tmpPath := f.path(key) + ".tmp"
	finalPath := f.path(key)

	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Delete removes the file for key, overwriting it with zeros first.
func (f *FileStore) Delete(key string) error {
	path := f.path(key)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", key, err)
	}

	// Best-effort scrub; some filesystems will still keep old blocks.
	zeros := make([]byte, info.Size())
	if err := os.WriteFile(path, zeros, 0o600); err != nil {
		return os.Remove(path)
	}

	return os.Remove(path)
}
