package entities

import (
	"fmt"
	"time"
)

// VarianceStatus classifies the signed difference between a counted and a
// theoretical quantity. Used for reporting only, never merged into alerts.
type VarianceStatus int

const (
	VarianceConforming VarianceStatus = iota
	VariancePositive
	VarianceNegative
)

// String method for VarianceStatus enum
func (v VarianceStatus) String() string {
	switch v {
	case VarianceConforming:
		return "Conforming"
	case VariancePositive:
		return "Positive"
	case VarianceNegative:
		return "Negative"
	default:
		return "Unknown"
	}
}

// CountItem represents one line of a physical inventory count
type CountItem struct {
	ProductID      int64
	TheoreticalQty int64
	CountedQty     int64
}

// Variance returns countedQty - theoreticalQty. Derived, never stored, so it
// cannot drift from the quantities it is computed from.
func (c CountItem) Variance() int64 {
	return c.CountedQty - c.TheoreticalQty
}

// VarianceStatus classifies the item's variance
func (c CountItem) VarianceStatus() VarianceStatus {
	switch v := c.Variance(); {
	case v > 0:
		return VariancePositive
	case v < 0:
		return VarianceNegative
	default:
		return VarianceConforming
	}
}

// InventoryCount represents one physical count session
type InventoryCount struct {
	ID        int64
	Agent     string
	CountedAt time.Time
	Items     []CountItem
}

// NewInventoryCount creates a validated InventoryCount
func NewInventoryCount(id int64, agent string, countedAt time.Time, items []CountItem) (*InventoryCount, error) {
	if id <= 0 {
		return nil, fmt.Errorf("count id must be positive, got %d", id)
	}
	for i, item := range items {
		if item.ProductID <= 0 {
			return nil, fmt.Errorf("count item %d: product id must be positive, got %d", i, item.ProductID)
		}
	}

	return &InventoryCount{
		ID:        id,
		Agent:     agent,
		CountedAt: countedAt,
		Items:     items,
	}, nil
}
