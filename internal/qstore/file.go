package qstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists snapshots as a single JSON file. Writes go to a temp
// file in the same directory and are renamed into place, so a crash
// mid-flush leaves the previous snapshot intact.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path. The file
// and its parent directories are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("qstore: reading %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("qstore: parsing %s: %w", s.path, err)
	}
	if snap.Version > SchemaVersion {
		return nil, fmt.Errorf("qstore: %s written by newer format version %d (supported: %d)", s.path, snap.Version, SchemaVersion)
	}
	return &snap, nil
}

func (s *FileStore) Save(snap *Snapshot) error {
	snap.Version = SchemaVersion
	snap.SavedAt = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("qstore: creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("qstore: marshaling snapshot: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("qstore: writing snapshot: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("qstore: finalizing snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
