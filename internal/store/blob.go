package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrBlobNotFound is returned by BlobStore.Read when no blob exists under
// the given name. Callers treat it (and any other read failure) as "absent"
// and fall back to defaults.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists opaque named blobs. The store flushes the user roster
// and the active session through this interface on every mutation; swapping
// the implementation (file, sqlite, postgres) changes where state lives
// without touching the store itself.
type BlobStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Delete(name string) error
}

// ── File-backed blobs ──────────────────────────────────────────

// FileBlobStore keeps each blob as a JSON file in a data directory.
// This is the default backend and mirrors the single-machine deployments
// the dashboard currently runs on.
type FileBlobStore struct {
	dir string
}

// NewFileBlobStore creates the data directory if needed.
func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBlobStore{dir: dir}, nil
}

func (s *FileBlobStore) path(name string) string {
	// Blob names are internal constants, but sanitize anyway.
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}

// Read returns the blob contents, or ErrBlobNotFound.
func (s *FileBlobStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

// Write replaces the blob atomically (write temp file, then rename).
func (s *FileBlobStore) Write(name string, data []byte) error {
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(name))
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *FileBlobStore) Delete(name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ── In-memory blobs ────────────────────────────────────────────

// MemoryBlobStore holds blobs in a map. Used in tests and as a last-resort
// fallback when no persistent backend is configured.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore returns an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: map[string][]byte{}}
}

// Read returns a copy of the blob, or ErrBlobNotFound.
func (s *MemoryBlobStore) Read(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, ErrBlobNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of the blob.
func (s *MemoryBlobStore) Write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[name] = cp
	return nil
}

// Delete removes the blob if present.
func (s *MemoryBlobStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, name)
	return nil
}
