package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/services"
)

// KPISet holds the scalar dashboard indicators, unformatted. Currency and
// locale rendering is a presentation collaborator's job.
type KPISet struct {
	ProductCount    int             `json:"product_count"`
	TotalStockQty   int64           `json:"total_stock_qty"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`

	// In-window movement totals.
	InflowQty     int64           `json:"inflow_qty"`
	OutflowQty    int64           `json:"outflow_qty"`
	ReceiptValue  decimal.Decimal `json:"receipt_value"`
	StockOutValue decimal.Decimal `json:"stock_out_value"`
	NetValue      decimal.Decimal `json:"net_value"`
}

// TrendSet holds the period-over-period signals
type TrendSet struct {
	InflowQty  services.Trend `json:"inflow_qty"`
	OutflowQty services.Trend `json:"outflow_qty"`
	NetValue   services.Trend `json:"net_value"`
}

// VarianceSummary summarizes the most recent physical count
type VarianceSummary struct {
	CountID    int64     `json:"count_id"`
	Agent      string    `json:"agent"`
	CountedAt  time.Time `json:"counted_at"`
	Positive   int       `json:"positive"`
	Negative   int       `json:"negative"`
	Conforming int       `json:"conforming"`
}

// DashboardResult is the complete output of one dashboard computation over
// one snapshot. Seq is the refresh sequence token: results with a lower
// token than the latest committed one are stale and must be discarded.
type DashboardResult struct {
	RunID       string    `json:"run_id"`
	Seq         uint64    `json:"seq"`
	GeneratedAt time.Time `json:"generated_at"`

	Period         services.Period      `json:"period"`
	Window         services.Window      `json:"window"`
	PreviousWindow services.Window      `json:"previous_window"`
	Granularity    services.Granularity `json:"granularity"`

	KPIs   KPISet   `json:"kpis"`
	Trends TrendSet `json:"trends"`

	// Buckets is the two-series chart sequence, ordered chronologically.
	Buckets []services.Bucket `json:"buckets"`

	TopOutboundByQty   []services.RankEntry `json:"top_outbound_by_qty"`
	TopOutboundByValue []services.RankEntry `json:"top_outbound_by_value"`

	Feed      []entities.Alert       `json:"feed"`
	ReadState services.ReadPartition `json:"read_state"`

	// Variance is nil when no physical count exists in the snapshot.
	Variance *VarianceSummary `json:"variance,omitempty"`

	// MaintenanceDegraded is set when maintenance records could not be
	// loaded and the feed fell back to stock-only alerts.
	MaintenanceDegraded bool `json:"maintenance_degraded"`
}
