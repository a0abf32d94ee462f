package readstate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTripIsIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	original := []int64{1000009, 3, 7, 1}
	if err := store.SaveReadIDs(original); err != nil {
		t.Fatalf("SaveReadIDs failed: %v", err)
	}

	loaded, err := store.LoadReadIDs()
	if err != nil {
		t.Fatalf("LoadReadIDs failed: %v", err)
	}

	expected := []int64{1, 3, 7, 1000009}
	if len(loaded) != len(expected) {
		t.Fatalf("expected %d ids, got %d", len(expected), len(loaded))
	}
	for i, id := range expected {
		if loaded[i] != id {
			t.Errorf("loaded[%d] = %d, want %d", i, loaded[i], id)
		}
	}

	// Saving what was loaded and loading again yields the identical set.
	if err := store.SaveReadIDs(loaded); err != nil {
		t.Fatalf("second SaveReadIDs failed: %v", err)
	}
	again, err := store.LoadReadIDs()
	if err != nil {
		t.Fatalf("second LoadReadIDs failed: %v", err)
	}
	if len(again) != len(loaded) {
		t.Fatalf("round trip changed length: %d vs %d", len(again), len(loaded))
	}
	for i := range loaded {
		if again[i] != loaded[i] {
			t.Errorf("round trip changed ids at %d: %d vs %d", i, again[i], loaded[i])
		}
	}
}

func TestFileStore_MissingFileIsEmptySet(t *testing.T) {
	store := NewFileStore(t.TempDir())

	ids, err := store.LoadReadIDs()
	if err != nil {
		t.Fatalf("LoadReadIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty set, got %v", ids)
	}
}

func TestFileStore_CorruptedFileIsEmptySet(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StorageKey), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to plant corrupted file: %v", err)
	}

	store := NewFileStore(dir)
	ids, err := store.LoadReadIDs()
	if err != nil {
		t.Fatalf("LoadReadIDs must not fail on corruption: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty set, got %v", ids)
	}
}
