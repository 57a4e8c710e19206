// Package filestore provides a collab.Store backed by a single file on
// disk, written atomically so a crash between writes never leaves a
// half-written blob for the next Load to choke on.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-ctap/authenticator-core/pkg/collab"
)

// Store persists one blob at path. Store writes go to a temp file in the
// same directory followed by os.Rename, which POSIX guarantees is atomic
// within a filesystem.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, collab.ErrNotFound
		}
		return nil, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}
	return blob, nil
}

func (s *Store) Store(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".authenticator-core-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("filestore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("filestore: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("filestore: rename temp file into place: %w", err)
	}
	return nil
}
