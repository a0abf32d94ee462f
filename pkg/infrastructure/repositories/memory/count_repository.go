package memory

import (
	"sort"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/repositories"
)

// CountRepository provides in-memory inventory count storage
type CountRepository struct {
	counts []entities.InventoryCount
}

// NewCountRepository creates a new in-memory count repository
func NewCountRepository() *CountRepository {
	return &CountRepository{
		counts: []entities.InventoryCount{},
	}
}

// Verify interface compliance
var _ repositories.CountRepository = (*CountRepository)(nil)

// LoadCounts loads count sessions into the repository
func (r *CountRepository) LoadCounts(counts []*entities.InventoryCount) error {
	for _, count := range counts {
		r.counts = append(r.counts, *count)
	}
	return nil
}

// GetAllCounts returns all count sessions ordered by counted-at ascending
func (r *CountRepository) GetAllCounts() ([]*entities.InventoryCount, error) {
	var counts []*entities.InventoryCount
	for i := range r.counts {
		counts = append(counts, &r.counts[i])
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].CountedAt.Before(counts[j].CountedAt)
	})
	return counts, nil
}
