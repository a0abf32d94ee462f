package memory

import (
	"sort"
	"sync"

	"github.com/stocksight/stocksight/pkg/domain/repositories"
)

// ReadStateRepository keeps the acknowledged alert id set in memory. Useful
// for tests and for sessions that do not want persistence.
type ReadStateRepository struct {
	mu  sync.Mutex
	ids []int64
}

// NewReadStateRepository creates an empty in-memory read-state store
func NewReadStateRepository() *ReadStateRepository {
	return &ReadStateRepository{}
}

// Verify interface compliance
var _ repositories.ReadStateRepository = (*ReadStateRepository)(nil)

// LoadReadIDs returns the acknowledged ids, sorted ascending
func (r *ReadStateRepository) LoadReadIDs() ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := append([]int64(nil), r.ids...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// SaveReadIDs replaces the acknowledged id set. Last write wins.
func (r *ReadStateRepository) SaveReadIDs(ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append([]int64(nil), ids...)
	return nil
}
