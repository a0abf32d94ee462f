package repositories

import "github.com/stocksight/stocksight/pkg/domain/entities"

// ReceiptRepository provides access to stock receipt events
type ReceiptRepository interface {
	GetAllReceipts() ([]*entities.ReceiptEvent, error)
	LoadReceipts(receipts []*entities.ReceiptEvent) error
}

// StockOutRepository provides access to stock withdrawal events
type StockOutRepository interface {
	GetAllStockOuts() ([]*entities.StockOutEvent, error)
	LoadStockOuts(stockOuts []*entities.StockOutEvent) error
}
