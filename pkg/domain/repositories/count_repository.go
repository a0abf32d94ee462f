package repositories

import "github.com/stocksight/stocksight/pkg/domain/entities"

// CountRepository provides access to physical inventory count sessions
type CountRepository interface {
	GetAllCounts() ([]*entities.InventoryCount, error)
	LoadCounts(counts []*entities.InventoryCount) error
}
