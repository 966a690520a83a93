// Package cache implements the persisted session cache as one YAML file per
// entry under the project scratch directory.
package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store implements ports.SessionCache using a file-per-entry strategy.
type Store struct{}

// NewStore creates a new session cache store.
func NewStore() *Store {
	return &Store{}
}

// Read decodes the named entry into out. A missing entry is not an error.
func (s *Store) Read(dir, name string, out any) (bool, error) {
	data, err := os.ReadFile(s.filename(dir, name)) //nolint:gosec // path is rooted in the project scratch dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to read cache entry"), "entry", name)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to decode cache entry"), "entry", name)
	}
	return true, nil
}

// Write encodes v into the named entry. Entries hold credentials, so both the
// directory and the file are owner-only.
func (s *Store) Write(dir, name string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode cache entry"), "entry", name)
	}

	filename := s.filename(dir, name)
	if err := os.MkdirAll(filepath.Dir(filename), dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}
	if err := os.WriteFile(filename, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache entry"), "entry", name)
	}
	return nil
}

// Remove deletes the named entry if present.
func (s *Store) Remove(dir, name string) error {
	err := os.Remove(s.filename(dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "entry", name)
	}
	return nil
}

func (s *Store) filename(dir, name string) string {
	return filepath.Join(dir, "cache", name+".yaml")
}
