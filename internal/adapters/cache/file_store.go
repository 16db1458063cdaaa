package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/ports"
	"os"
	"path/filepath"
)

// Snapshot store backed by a single JSON document on local disk. The
// default backend: no external service needed, and snapshots stay small
// enough that wholesale rewrites are cheap.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the snapshot location under the user cache dir.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("file store: resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "itinerary-route-service", "response_cache.json"), nil
}

type snapshotFile struct {
	Entries []ports.CacheEntry `json:"entries"`
}

// Load all persisted entries. A missing file is an empty snapshot, not an
// error; a corrupt file is an error the caller downgrades to "start empty".
func (f *FileStore) Load(ctx context.Context) ([]ports.CacheEntry, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []ports.CacheEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %q: %w", f.path, err)
	}

	var doc snapshotFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file store: parse %q: %w", f.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = []ports.CacheEntry{}
	}
	return doc.Entries, nil
}

// Save replaces the snapshot file. The document is written to a temp file
// in the same directory and renamed into place so a crash mid-write never
// leaves a truncated snapshot behind.
func (f *FileStore) Save(ctx context.Context, entries []ports.CacheEntry) error {
	if entries == nil {
		entries = []ports.CacheEntry{}
	}

	data, err := json.MarshalIndent(snapshotFile{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("file store: create snapshot dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("file store: write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("file store: rename temp snapshot: %w", err)
	}

	return nil
}
