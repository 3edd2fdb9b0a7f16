// Package cas implements the content-addressed cache of compiled graph dumps.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphStore = (*Store)(nil)

// Store implements ports.GraphStore using a file-per-fingerprint strategy.
// Entries are sharded by the first two characters of their key.
type Store struct {
	root string
}

// NewStore creates a new GraphStore backed by the directory at root.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// Get retrieves the cached dump for key.
func (s *Store) Get(key string) ([]byte, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is built from the cache root and a validated key
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}
	return data, nil
}

// Put stores the dump under key. The file is written next to its final location
// and renamed into place so readers never observe a partial dump.
func (s *Store) Put(key string, data []byte) error {
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}

func (s *Store) filename(key string) (string, error) {
	if len(key) < 3 || strings.ContainsAny(key, `/\.`) {
		return "", zerr.With(domain.ErrStoreReadFailed, "key", key)
	}
	return filepath.Join(s.root, key[:2], key[2:]+".yaml"), nil
}
