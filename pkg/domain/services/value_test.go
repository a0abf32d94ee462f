package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
)

func testProducts() []*entities.Product {
	return []*entities.Product{
		{ID: 1, Name: "Gants", Quantity: 10, UnitPrice: decimal.NewFromInt(3)},
		{ID: 2, Name: "Masques", Quantity: 4, UnitPrice: decimal.NewFromInt(2)},
	}
}

func TestValuator_StockOutUnitPriceFallbackChain(t *testing.T) {
	v := NewValuator(testProducts())
	captured := decimal.NewFromFloat(2.5)

	testCases := []struct {
		name     string
		event    *entities.StockOutEvent
		expected decimal.Decimal
	}{
		{
			"captured price wins",
			&entities.StockOutEvent{ProductID: 1, CapturedPrice: decimal.NullDecimal{Decimal: captured, Valid: true}},
			captured,
		},
		{
			"master price fallback",
			&entities.StockOutEvent{ProductID: 1},
			decimal.NewFromInt(3),
		},
		{
			"unknown product falls back to zero",
			&entities.StockOutEvent{ProductID: 999},
			decimal.Zero,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.StockOutUnitPrice(tc.event); !got.Equal(tc.expected) {
				t.Errorf("StockOutUnitPrice = %s, want %s", got, tc.expected)
			}
		})
	}
}

func TestValuator_ReceiptLineUnitPriceFallback(t *testing.T) {
	v := NewValuator(testProducts())

	line := entities.ReceiptLine{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}
	if got := v.ReceiptLineUnitPrice(line); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("line price must win, got %s", got)
	}

	noPrice := entities.ReceiptLine{ProductID: 2, Quantity: 1}
	if got := v.ReceiptLineUnitPrice(noPrice); !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("master price fallback = %s, want 2", got)
	}

	unknown := entities.ReceiptLine{ProductID: 777, Quantity: 1}
	if got := v.ReceiptLineUnitPrice(unknown); !got.Equal(decimal.Zero) {
		t.Errorf("zero fallback = %s, want 0", got)
	}
}

func TestValuator_NetPeriodValue(t *testing.T) {
	v := NewValuator(testProducts())
	window := Window{
		Start: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
	inWindow := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	receipts := []*entities.ReceiptEvent{
		{ID: 1, ReceivedAt: inWindow, Lines: []entities.ReceiptLine{
			{ProductID: 1, Quantity: 10, UnitPrice: decimal.NewFromInt(3)}, // 30
			{ProductID: 2, Quantity: 5},                                    // master price 2 -> 10
		}},
		{ID: 2, ReceivedAt: outOfWindow, Lines: []entities.ReceiptLine{
			{ProductID: 1, Quantity: 100, UnitPrice: decimal.NewFromInt(3)},
		}},
	}
	stockOuts := []*entities.StockOutEvent{
		{ID: 1, ProductID: 1, Quantity: 5, MovedAt: inWindow}, // master price 3 -> 15
		{ID: 2, ProductID: 2, Quantity: 9, MovedAt: outOfWindow},
	}

	if got := v.ReceiptValue(receipts, window); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("ReceiptValue = %s, want 40", got)
	}
	if got := v.StockOutValue(stockOuts, window); !got.Equal(decimal.NewFromInt(15)) {
		t.Errorf("StockOutValue = %s, want 15", got)
	}
	if got := v.NetPeriodValue(receipts, stockOuts, window); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("NetPeriodValue = %s, want 25", got)
	}
}

func TestTotalStockValue(t *testing.T) {
	products := []*entities.Product{
		{ID: 1, Quantity: 10, UnitPrice: decimal.NewFromInt(3)},
		{ID: 2, Quantity: 4, UnitPrice: decimal.NewFromFloat(2.5)},
		{ID: 3, Quantity: -2, UnitPrice: decimal.NewFromInt(100)}, // ignored
	}

	if got := TotalStockValue(products); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("TotalStockValue = %s, want 40", got)
	}
}
