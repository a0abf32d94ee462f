package services

import (
	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
)

// Valuator resolves monetary unit prices for movement events against a
// product master snapshot and computes value sums over windows.
//
// Price resolution order, first match wins: the price captured on the event
// itself, then the current master price of the referenced product, then
// zero. The zero fallback never fails but can silently understate totals
// when neither source is available; that risk is accepted, not corrected.
type Valuator struct {
	masterPrices map[int64]decimal.Decimal
}

// NewValuator creates a Valuator over a product snapshot
func NewValuator(products []*entities.Product) *Valuator {
	prices := make(map[int64]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.UnitPrice
	}
	return &Valuator{masterPrices: prices}
}

// ReceiptLineUnitPrice resolves the unit price for a receipt line
func (v *Valuator) ReceiptLineUnitPrice(line entities.ReceiptLine) decimal.Decimal {
	if line.UnitPrice.IsPositive() {
		return line.UnitPrice
	}
	if price, ok := v.masterPrices[line.ProductID]; ok {
		return price
	}
	return decimal.Zero
}

// StockOutUnitPrice resolves the unit price for a stock withdrawal
func (v *Valuator) StockOutUnitPrice(out *entities.StockOutEvent) decimal.Decimal {
	if out.CapturedPrice.Valid {
		return out.CapturedPrice.Decimal
	}
	if price, ok := v.masterPrices[out.ProductID]; ok {
		return price
	}
	return decimal.Zero
}

// ReceiptValue sums line quantity times resolved unit price over in-window
// receipts. Receipts with a missing timestamp are skipped.
func (v *Valuator) ReceiptValue(receipts []*entities.ReceiptEvent, window Window) decimal.Decimal {
	total := decimal.Zero
	for _, receipt := range receipts {
		if receipt.ReceivedAt.IsZero() || !window.Contains(receipt.ReceivedAt) {
			continue
		}
		for _, line := range receipt.Lines {
			total = total.Add(v.ReceiptLineUnitPrice(line).Mul(decimal.NewFromInt(line.Quantity)))
		}
	}
	return total
}

// StockOutValue sums quantity times resolved unit price over in-window
// stock withdrawals. Withdrawals with a missing timestamp are skipped.
func (v *Valuator) StockOutValue(stockOuts []*entities.StockOutEvent, window Window) decimal.Decimal {
	total := decimal.Zero
	for _, out := range stockOuts {
		if out.MovedAt.IsZero() || !window.Contains(out.MovedAt) {
			continue
		}
		total = total.Add(v.StockOutUnitPrice(out).Mul(decimal.NewFromInt(out.Quantity)))
	}
	return total
}

// NetPeriodValue is receipt value minus stock-out value over one window.
// Reused both as a standalone KPI and as one trend input.
func (v *Valuator) NetPeriodValue(receipts []*entities.ReceiptEvent, stockOuts []*entities.StockOutEvent, window Window) decimal.Decimal {
	return v.ReceiptValue(receipts, window).Sub(v.StockOutValue(stockOuts, window))
}

// TotalStockValue sums quantity times master price over the whole product
// snapshot. Negative quantities contribute zero.
func TotalStockValue(products []*entities.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if p.Quantity <= 0 {
			continue
		}
		total = total.Add(p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return total
}
