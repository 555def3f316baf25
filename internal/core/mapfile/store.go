package mapfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIO is returned when reading or writing map storage fails.
var ErrIO = errors.New("map storage")

// FileStore reads and writes maps on the local filesystem.
type FileStore struct{}

// NewFileStore creates a filesystem backed store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// ReadFile returns the raw contents of path.
func (s *FileStore) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return data, nil
}

// WriteFile replaces path with data atomically. Parent directories are
// created as needed.
func (s *FileStore) WriteFile(path string, data []byte) error {
	if err := s.write(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}

func (s *FileStore) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
