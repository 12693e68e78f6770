package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// FileStore keeps one file per map in a directory.
// Writes go to a temporary file that is renamed into place, so readers
// never observe a half-written map.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store in dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create map dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the maps.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Get reads the map file.
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateMapName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read map %s", name)
	}
	return data, nil
}

// Put writes the map file atomically.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write map %s", name)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeStorage, err, "write map %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeStorage, err, "write map %s", name)
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeStorage, err, "write map %s", name)
	}
	return nil
}

// Delete removes the map file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "remove map %s", name)
	}
	return nil
}

// List returns the names of the regular files in the directory, skipping
// hidden files such as in-flight temporaries.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read map dir %s", s.dir)
	}
	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

// Backend returns "file:" followed by the directory.
func (s *FileStore) Backend() string { return "file:" + s.dir }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
