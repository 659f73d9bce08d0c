package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DiskStorage writes objects below BasePath.
type DiskStorage struct {
	BasePath  string
	URLPrefix string

	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath, urlPrefix string) *DiskStorage {
	return &DiskStorage{BasePath: basePath, URLPrefix: urlPrefix, dirs: make(map[string]bool, 4)}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if s.dirs[dir] {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) fullPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", errors.New("storage: invalid key " + key)
	}
	return filepath.Join(s.BasePath, filepath.FromSlash(clean)), nil
}

func (s *DiskStorage) Save(_ context.Context, key string, r io.Reader, _ string) error {
	name, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := s.createDir(filepath.Dir(name)); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *DiskStorage) Exists(_ context.Context, key string) (bool, error) {
	name, err := s.fullPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *DiskStorage) Delete(_ context.Context, key string) error {
	name, err := s.fullPath(key)
	if err != nil {
		return err
	}
	err = os.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotExist
	}
	return err
}

func (s *DiskStorage) URL(key string) string {
	return strings.TrimSuffix(s.URLPrefix, "/") + "/" + key
}
