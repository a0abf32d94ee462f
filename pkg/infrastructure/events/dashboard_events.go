package events

import (
	"time"

	"github.com/stocksight/stocksight/pkg/domain/services"
)

const (
	DashboardRefreshedEvent = "dashboard.refreshed"
	DashboardDiscardedEvent = "dashboard.discarded"

	AlertAcknowledgedEvent     = "alert.acknowledged"
	AlertsAllAcknowledgedEvent = "alert.acknowledged.all"

	SnapshotLoadedEvent = "snapshot.loaded"
)

// DashboardStream is the stream id all dashboard lifecycle events go to
const DashboardStream = "dashboard"

type DashboardRefreshed struct {
	RunID       string          `json:"run_id"`
	Seq         uint64          `json:"seq"`
	Period      services.Period `json:"period"`
	GeneratedAt time.Time       `json:"generated_at"`
	AlertCount  int             `json:"alert_count"`
}

type DashboardDiscarded struct {
	RunID     string `json:"run_id"`
	Seq       uint64 `json:"seq"`
	LatestSeq uint64 `json:"latest_seq"`
}

type AlertAcknowledged struct {
	AlertID int64 `json:"alert_id"`
}

type AlertsAllAcknowledged struct {
	Count int `json:"count"`
}

type SnapshotLoaded struct {
	Source    string `json:"source"`
	Products  int    `json:"products"`
	Receipts  int    `json:"receipts"`
	StockOuts int    `json:"stock_outs"`
	Counts    int    `json:"counts"`
	Records   int    `json:"records"`
}
