// Package readstate persists the set of acknowledged alert ids as an
// ordered list of integers under one fixed storage key.
package readstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/stocksight/stocksight/pkg/domain/repositories"
	"github.com/stocksight/stocksight/pkg/infrastructure/obs"
)

// StorageKey is the fixed filename the id list lives under. There is no
// schema version: if the numeric id encoding ever changes, previously
// persisted ids silently stop matching.
const StorageKey = "read_alerts.json"

// FileStore keeps the acknowledged id set in a JSON file. A corrupted or
// missing file reads as an empty set, never as an error. Concurrent
// sessions sharing the same directory race with last-write-wins semantics.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at the given directory
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey)}
}

// Verify interface compliance
var _ repositories.ReadStateRepository = (*FileStore)(nil)

// LoadReadIDs reads the persisted id list, sorted ascending
func (s *FileStore) LoadReadIDs() ([]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		obs.Logger.Warn("read state unreadable, treating as empty", "path", s.path, "error", err)
		return nil, nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		obs.Logger.Warn("read state corrupted, treating as empty", "path", s.path, "error", err)
		return nil, nil
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// SaveReadIDs replaces the persisted id list. The write goes through a
// temporary file and a rename so a crash cannot leave a half-written list.
func (s *FileStore) SaveReadIDs(ids []int64) error {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	data, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("failed to encode read state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write read state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace read state: %w", err)
	}
	return nil
}
