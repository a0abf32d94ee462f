package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockStatus represents the stock level classification of a product
type StockStatus int

const (
	StockNormal StockStatus = iota
	StockLow
	StockCritical
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockNormal:
		return "Normal"
	case StockLow:
		return "Low"
	case StockCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Product represents a snapshot of one product master record.
// The analytics core only reads products; mutation happens elsewhere.
type Product struct {
	ID            int64
	Name          string
	Category      string
	Quantity      int64
	UnitPrice     decimal.Decimal
	CriticalLevel int64
}

// NewProduct creates a validated Product
func NewProduct(id int64, name, category string, quantity int64, unitPrice decimal.Decimal, criticalLevel int64) (*Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", id)
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if criticalLevel < 0 {
		return nil, fmt.Errorf("critical level cannot be negative, got %d", criticalLevel)
	}

	return &Product{
		ID:            id,
		Name:          name,
		Category:      category,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CriticalLevel: criticalLevel,
	}, nil
}

// StockStatus classifies the product against its low-stock threshold.
// A quantity exactly equal to the critical level is Low, not Normal.
func (p *Product) StockStatus() StockStatus {
	if p.Quantity <= 0 {
		return StockCritical
	}
	if p.Quantity <= p.CriticalLevel {
		return StockLow
	}
	return StockNormal
}
