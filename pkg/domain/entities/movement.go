package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine represents a single line item on a stock receipt
type ReceiptLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// ReceiptEvent represents one stock receipt with its line items.
// Immutable once created.
type ReceiptEvent struct {
	ID         int64
	ReceivedAt time.Time
	Lines      []ReceiptLine
}

// NewReceiptEvent creates a validated ReceiptEvent
func NewReceiptEvent(id int64, receivedAt time.Time, lines []ReceiptLine) (*ReceiptEvent, error) {
	if id <= 0 {
		return nil, fmt.Errorf("receipt id must be positive, got %d", id)
	}
	for i, line := range lines {
		if line.ProductID <= 0 {
			return nil, fmt.Errorf("receipt line %d: product id must be positive, got %d", i, line.ProductID)
		}
		if line.Quantity < 0 {
			return nil, fmt.Errorf("receipt line %d: quantity cannot be negative, got %d", i, line.Quantity)
		}
	}

	return &ReceiptEvent{
		ID:         id,
		ReceivedAt: receivedAt,
		Lines:      lines,
	}, nil
}

// TotalQuantity returns the summed quantity over all line items
func (r *ReceiptEvent) TotalQuantity() int64 {
	var total int64
	for _, line := range r.Lines {
		total += line.Quantity
	}
	return total
}

// StockOutEvent represents one stock withdrawal.
// CapturedPrice is the unit price recorded at withdrawal time; when it is
// not valid the current master price is the fallback.
type StockOutEvent struct {
	ID            int64
	ProductID     int64
	Quantity      int64
	CapturedPrice decimal.NullDecimal
	MovedAt       time.Time
	Beneficiary   string
	ExitType      string
}

// NewStockOutEvent creates a validated StockOutEvent
func NewStockOutEvent(id, productID, quantity int64, movedAt time.Time) (*StockOutEvent, error) {
	if id <= 0 {
		return nil, fmt.Errorf("stock-out id must be positive, got %d", id)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("stock-out product id must be positive, got %d", productID)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("stock-out quantity cannot be negative, got %d", quantity)
	}

	return &StockOutEvent{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		MovedAt:   movedAt,
	}, nil
}
