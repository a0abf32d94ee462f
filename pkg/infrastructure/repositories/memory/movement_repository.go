package memory

import (
	"sort"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/repositories"
)

// ReceiptRepository provides in-memory receipt event storage
type ReceiptRepository struct {
	receipts []entities.ReceiptEvent
}

// NewReceiptRepository creates a new in-memory receipt repository
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{
		receipts: []entities.ReceiptEvent{},
	}
}

// Verify interface compliance
var _ repositories.ReceiptRepository = (*ReceiptRepository)(nil)

// LoadReceipts loads receipt events into the repository
func (r *ReceiptRepository) LoadReceipts(receipts []*entities.ReceiptEvent) error {
	for _, receipt := range receipts {
		r.receipts = append(r.receipts, *receipt)
	}
	return nil
}

// GetAllReceipts returns all receipts ordered by received-at ascending
func (r *ReceiptRepository) GetAllReceipts() ([]*entities.ReceiptEvent, error) {
	var receipts []*entities.ReceiptEvent
	for i := range r.receipts {
		receipts = append(receipts, &r.receipts[i])
	}
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].ReceivedAt.Before(receipts[j].ReceivedAt)
	})
	return receipts, nil
}

// StockOutRepository provides in-memory stock withdrawal storage
type StockOutRepository struct {
	stockOuts []entities.StockOutEvent
}

// NewStockOutRepository creates a new in-memory stock-out repository
func NewStockOutRepository() *StockOutRepository {
	return &StockOutRepository{
		stockOuts: []entities.StockOutEvent{},
	}
}

// Verify interface compliance
var _ repositories.StockOutRepository = (*StockOutRepository)(nil)

// LoadStockOuts loads stock withdrawals into the repository
func (r *StockOutRepository) LoadStockOuts(stockOuts []*entities.StockOutEvent) error {
	for _, out := range stockOuts {
		r.stockOuts = append(r.stockOuts, *out)
	}
	return nil
}

// GetAllStockOuts returns all stock withdrawals ordered by movement time
// ascending
func (r *StockOutRepository) GetAllStockOuts() ([]*entities.StockOutEvent, error) {
	var stockOuts []*entities.StockOutEvent
	for i := range r.stockOuts {
		stockOuts = append(stockOuts, &r.stockOuts[i])
	}
	sort.Slice(stockOuts, func(i, j int) bool {
		return stockOuts[i].MovedAt.Before(stockOuts[j].MovedAt)
	})
	return stockOuts, nil
}
