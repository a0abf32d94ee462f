package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/services"
	"github.com/stocksight/stocksight/pkg/infrastructure/events"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/stocksight/stocksight/pkg/infrastructure/testing"
)

// failingMaintenanceRepo simulates an unavailable secondary collection
type failingMaintenanceRepo struct{}

func (f *failingMaintenanceRepo) GetAllMaintenanceRecords() ([]*entities.MaintenanceRecord, error) {
	return nil, errors.New("maintenance backend unavailable")
}

func (f *failingMaintenanceRepo) LoadMaintenanceRecords(records []*entities.MaintenanceRecord) error {
	return nil
}

func testSnapshot(now time.Time) Snapshot {
	products, receipts, stockOuts, counts, maintenance := testhelpers.BuildRetailTestData(now)
	return Snapshot{
		Products:    products,
		Receipts:    receipts,
		StockOuts:   stockOuts,
		Counts:      counts,
		Maintenance: maintenance,
	}
}

func TestDashboardService_BuildDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)

	service := NewDashboardService(memory.NewReadStateRepository(), events.NewInMemoryEventStore())

	result, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("BuildDashboard failed: %v", err)
	}

	if result.KPIs.ProductCount != 4 {
		t.Errorf("product count = %d, want 4", result.KPIs.ProductCount)
	}
	if result.KPIs.TotalStockQty != 245 {
		t.Errorf("total stock qty = %d, want 245", result.KPIs.TotalStockQty)
	}
	// Receipts 1 and 2 are in-window: 50+12+100. Receipt 3 is in the
	// previous window.
	if result.KPIs.InflowQty != 162 {
		t.Errorf("inflow qty = %d, want 162", result.KPIs.InflowQty)
	}
	// Stock-outs 1-3 are in-window, stock-out 4 is not.
	if result.KPIs.OutflowQty != 22 {
		t.Errorf("outflow qty = %d, want 22", result.KPIs.OutflowQty)
	}

	if result.Granularity != services.GranularityDay {
		t.Errorf("granularity = %s, want day", result.Granularity)
	}
	if len(result.Buckets) == 0 {
		t.Fatal("expected chart buckets")
	}
	for i := 1; i < len(result.Buckets); i++ {
		if !result.Buckets[i-1].Start.Before(result.Buckets[i].Start) {
			t.Errorf("buckets out of order at %d", i)
		}
	}

	// More inflow and outflow this window than the previous one.
	if result.Trends.InflowQty.Direction != services.TrendUp {
		t.Errorf("inflow trend = %s, want up", result.Trends.InflowQty.Direction)
	}
	if result.Trends.OutflowQty.Direction != services.TrendDown {
		t.Errorf("outflow trend = %s, want down (22 now vs 40 before)", result.Trends.OutflowQty.Direction)
	}

	// Feed: Masques critical, maintenance 9 overdue, maintenance 10
	// upcoming, Gel low. Records 11 (beyond horizon) and 12 (no next date)
	// are silent.
	if len(result.Feed) != 4 {
		t.Fatalf("expected 4 alerts, got %d", len(result.Feed))
	}
	if result.Feed[0].Kind != entities.AlertStockCritical {
		t.Errorf("feed[0] = %s, want stock-critical", result.Feed[0].Kind)
	}
	if result.Feed[1].Kind != entities.AlertMaintenanceOverdue {
		t.Errorf("feed[1] = %s, want maintenance-overdue", result.Feed[1].Kind)
	}
	if len(result.ReadState.Unread) != 4 {
		t.Errorf("expected all 4 alerts unread, got %d", len(result.ReadState.Unread))
	}

	if result.Variance == nil {
		t.Fatal("expected a variance summary")
	}
	if result.Variance.Positive != 1 || result.Variance.Negative != 1 || result.Variance.Conforming != 1 {
		t.Errorf("variance summary = %+v, want 1/1/1", result.Variance)
	}

	if len(result.TopOutboundByQty) == 0 {
		t.Fatal("expected outbound rankings")
	}
	if result.TopOutboundByQty[0].Key != "Gants nitrile" {
		t.Errorf("top outbound = %s, want Gants nitrile", result.TopOutboundByQty[0].Key)
	}

	if result.MaintenanceDegraded {
		t.Error("maintenance must not be degraded with a healthy repo")
	}
}

func TestDashboardService_MaintenanceFailureDegradesFeed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)
	snapshot.Maintenance = &failingMaintenanceRepo{}

	service := NewDashboardService(memory.NewReadStateRepository(), nil)

	result, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("a failing maintenance collection must not be fatal: %v", err)
	}

	if !result.MaintenanceDegraded {
		t.Error("expected degraded maintenance flag")
	}
	for _, alert := range result.Feed {
		if alert.ID.Source == entities.AlertSourceMaintenance {
			t.Errorf("degraded feed must be stock-only, found %s", alert.Kind)
		}
	}
}

func TestDashboardService_CommitDiscardsStaleRefresh(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)

	service := NewDashboardService(memory.NewReadStateRepository(), events.NewInMemoryEventStore())

	first, err := service.BuildDashboard(ctx, services.Period7Days, now, snapshot)
	if err != nil {
		t.Fatalf("first BuildDashboard failed: %v", err)
	}
	second, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("second BuildDashboard failed: %v", err)
	}

	// The later refresh lands first; the earlier one must then be dropped.
	if !service.Commit(second) {
		t.Fatal("committing the newest result must succeed")
	}
	if service.Commit(first) {
		t.Error("stale refresh must be discarded")
	}

	latest := service.Latest()
	if latest == nil || latest.Seq != second.Seq {
		t.Errorf("latest result must keep seq %d", second.Seq)
	}
}

func TestDashboardService_MarkAlertRead(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(now)

	readState := memory.NewReadStateRepository()
	service := NewDashboardService(readState, events.NewInMemoryEventStore())

	result, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("BuildDashboard failed: %v", err)
	}

	critical := result.Feed[0]
	if err := service.MarkAlertRead(critical.ID); err != nil {
		t.Fatalf("MarkAlertRead failed: %v", err)
	}
	// Marking twice stays idempotent.
	if err := service.MarkAlertRead(critical.ID); err != nil {
		t.Fatalf("second MarkAlertRead failed: %v", err)
	}

	ids, err := readState.LoadReadIDs()
	if err != nil {
		t.Fatalf("LoadReadIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != critical.ID.Numeric() {
		t.Errorf("read ids = %v, want [%d]", ids, critical.ID.Numeric())
	}

	// The acknowledged set only takes effect on the next computation pass.
	recomputed, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(recomputed.ReadState.Read) != 1 {
		t.Errorf("expected 1 read alert after recompute, got %d", len(recomputed.ReadState.Read))
	}

	if err := service.MarkAllRead(recomputed.Feed); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	final, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		t.Fatalf("final recompute failed: %v", err)
	}
	if len(final.ReadState.Unread) != 0 {
		t.Errorf("expected no unread alerts, got %d", len(final.ReadState.Unread))
	}
}
