package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/application/dto"
	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/repositories"
	"github.com/stocksight/stocksight/pkg/domain/services"
	"github.com/stocksight/stocksight/pkg/infrastructure/events"
	"github.com/stocksight/stocksight/pkg/infrastructure/obs"
)

// Snapshot bundles the read-only record collections one dashboard
// computation consumes. Each collection is assumed complete and unpaginated
// for the active scope at call time.
type Snapshot struct {
	Products    repositories.ProductRepository
	Receipts    repositories.ReceiptRepository
	StockOuts   repositories.StockOutRepository
	Counts      repositories.CountRepository
	Maintenance repositories.MaintenanceRepository
}

// DashboardConfig holds tuning knobs for dashboard computation
type DashboardConfig struct {
	// MaintenanceHorizonDays is how far ahead upcoming maintenance alerts
	// look.
	MaintenanceHorizonDays int
	// TopN truncates ranked lists.
	TopN int
}

// DashboardService turns a snapshot into a complete dashboard result: KPIs,
// trends, chart buckets, rankings and the unified alert feed. Computation is
// a single synchronous pass; the only mutable state the service owns is the
// refresh sequence counter and the last committed result.
type DashboardService struct {
	classifier *services.AlertClassifier
	config     DashboardConfig
	readState  repositories.ReadStateRepository
	eventStore events.EventStore

	mu        sync.Mutex
	nextSeq   uint64
	latestSeq uint64
	latest    *dto.DashboardResult
}

// NewDashboardService creates a dashboard service with default configuration
func NewDashboardService(readState repositories.ReadStateRepository, eventStore events.EventStore) *DashboardService {
	return NewDashboardServiceWithConfig(readState, eventStore, DashboardConfig{
		MaintenanceHorizonDays: services.DefaultMaintenanceHorizonDays,
		TopN:                   5,
	})
}

// NewDashboardServiceWithConfig creates a dashboard service with custom
// configuration
func NewDashboardServiceWithConfig(readState repositories.ReadStateRepository, eventStore events.EventStore, config DashboardConfig) *DashboardService {
	if config.TopN <= 0 {
		config.TopN = 5
	}
	return &DashboardService{
		classifier: services.NewAlertClassifierWithHorizon(config.MaintenanceHorizonDays),
		config:     config,
		readState:  readState,
		eventStore: eventStore,
	}
}

// BuildDashboard computes a full dashboard result for one period over one
// snapshot. The result carries a freshly issued sequence token; callers hand
// it to Commit, which discards it if a later refresh already landed.
//
// Products, receipts and stock-outs are primary collections: their failure
// fails the whole computation. Maintenance records and inventory counts are
// secondary: their failure degrades the result (stock-only feed, no variance
// summary) and is logged rather than surfaced.
func (s *DashboardService) BuildDashboard(ctx context.Context, period services.Period, now time.Time, snapshot Snapshot) (*dto.DashboardResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq := s.issueSeq()
	now = now.UTC()

	resolved, err := services.ResolvePeriod(period, now)
	if err != nil {
		return nil, err
	}

	products, err := snapshot.Products.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	receipts, err := snapshot.Receipts.GetAllReceipts()
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}
	stockOuts, err := snapshot.StockOuts.GetAllStockOuts()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock-outs: %w", err)
	}

	maintenanceDegraded := false
	var maintenanceRecords []*entities.MaintenanceRecord
	if snapshot.Maintenance != nil {
		maintenanceRecords, err = snapshot.Maintenance.GetAllMaintenanceRecords()
		if err != nil {
			obs.Logger.Warn("maintenance records unavailable, alert feed degraded to stock-only", "error", err)
			maintenanceRecords = nil
			maintenanceDegraded = true
		}
	} else {
		maintenanceDegraded = true
	}

	result := &dto.DashboardResult{
		RunID:          uuid.New().String(),
		Seq:            seq,
		GeneratedAt:    now,
		Period:         period,
		Window:         resolved.Current,
		PreviousWindow: resolved.Previous,
		Granularity:    resolved.Granularity,
	}

	valuator := services.NewValuator(products)

	result.KPIs = buildKPIs(products, receipts, stockOuts, valuator, resolved.Current)
	result.Trends = buildTrends(receipts, stockOuts, valuator, resolved)
	result.Buckets = services.AggregateMovements(receipts, stockOuts, resolved.Current, resolved.Granularity)
	result.TopOutboundByQty, result.TopOutboundByValue = buildRankings(products, stockOuts, valuator, resolved.Current, s.config.TopN)

	result.Feed = s.classifier.BuildFeed(products, maintenanceRecords, now)
	result.ReadState = services.PartitionRead(result.Feed, s.loadReadIDSet())
	result.MaintenanceDegraded = maintenanceDegraded

	result.Variance = buildVarianceSummary(snapshot.Counts)

	return result, nil
}

// Commit installs a computed result as the latest displayed state unless a
// result with a higher sequence token has already been committed. Stale
// completions are discarded and logged, never treated as errors.
func (s *DashboardService) Commit(result *dto.DashboardResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil && result.Seq < s.latestSeq {
		obs.Logger.Warn("discarding stale dashboard refresh", "seq", result.Seq, "latest_seq", s.latestSeq)
		s.publish(events.DashboardDiscardedEvent, events.DashboardDiscarded{
			RunID:     result.RunID,
			Seq:       result.Seq,
			LatestSeq: s.latestSeq,
		})
		return false
	}

	s.latest = result
	s.latestSeq = result.Seq
	s.publish(events.DashboardRefreshedEvent, events.DashboardRefreshed{
		RunID:       result.RunID,
		Seq:         result.Seq,
		Period:      result.Period,
		GeneratedAt: result.GeneratedAt,
		AlertCount:  len(result.Feed),
	})
	return true
}

// Latest returns the most recently committed result, or nil before the
// first commit.
func (s *DashboardService) Latest() *dto.DashboardResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// MarkAlertRead adds one alert to the persisted acknowledged set. The
// classifier itself stays stateless: the new set only takes effect on the
// next computation pass.
func (s *DashboardService) MarkAlertRead(id entities.AlertID) error {
	ids, err := s.readState.LoadReadIDs()
	if err != nil {
		return fmt.Errorf("failed to load read state: %w", err)
	}

	numeric := id.Numeric()
	for _, existing := range ids {
		if existing == numeric {
			return nil
		}
	}

	ids = append(ids, numeric)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if err := s.readState.SaveReadIDs(ids); err != nil {
		return fmt.Errorf("failed to save read state: %w", err)
	}

	s.publish(events.AlertAcknowledgedEvent, events.AlertAcknowledged{AlertID: numeric})
	return nil
}

// MarkAllRead acknowledges every alert in the given feed
func (s *DashboardService) MarkAllRead(feed []entities.Alert) error {
	ids, err := s.readState.LoadReadIDs()
	if err != nil {
		return fmt.Errorf("failed to load read state: %w", err)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, alert := range feed {
		numeric := alert.ID.Numeric()
		if _, ok := seen[numeric]; !ok {
			seen[numeric] = struct{}{}
			ids = append(ids, numeric)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if err := s.readState.SaveReadIDs(ids); err != nil {
		return fmt.Errorf("failed to save read state: %w", err)
	}

	s.publish(events.AlertsAllAcknowledgedEvent, events.AlertsAllAcknowledged{Count: len(feed)})
	return nil
}

func (s *DashboardService) issueSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// loadReadIDSet returns the acknowledged-id set; a failing or corrupted
// store degrades to an empty set.
func (s *DashboardService) loadReadIDSet() map[int64]struct{} {
	if s.readState == nil {
		return nil
	}
	ids, err := s.readState.LoadReadIDs()
	if err != nil {
		obs.Logger.Warn("read state unavailable, treating all alerts as unread", "error", err)
		return nil
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s *DashboardService) publish(eventType string, data interface{}) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(events.DashboardStream, events.NewEvent(eventType, events.DashboardStream, data)); err != nil {
		obs.Logger.Warn("failed to publish event", "type", eventType, "error", err)
	}
}

func buildKPIs(products []*entities.Product, receipts []*entities.ReceiptEvent, stockOuts []*entities.StockOutEvent, valuator *services.Valuator, window services.Window) dto.KPISet {
	kpis := dto.KPISet{
		ProductCount:    len(products),
		TotalStockValue: services.TotalStockValue(products),
		ReceiptValue:    valuator.ReceiptValue(receipts, window),
		StockOutValue:   valuator.StockOutValue(stockOuts, window),
	}
	for _, p := range products {
		if p.Quantity > 0 {
			kpis.TotalStockQty += p.Quantity
		}
	}
	kpis.InflowQty = inflowQty(receipts, window)
	kpis.OutflowQty = outflowQty(stockOuts, window)
	kpis.NetValue = kpis.ReceiptValue.Sub(kpis.StockOutValue)
	return kpis
}

func buildTrends(receipts []*entities.ReceiptEvent, stockOuts []*entities.StockOutEvent, valuator *services.Valuator, resolved services.ResolvedPeriod) dto.TrendSet {
	currentNet := valuator.NetPeriodValue(receipts, stockOuts, resolved.Current)
	previousNet := valuator.NetPeriodValue(receipts, stockOuts, resolved.Previous)

	return dto.TrendSet{
		InflowQty: services.ComputeTrend(
			float64(inflowQty(receipts, resolved.Current)),
			float64(inflowQty(receipts, resolved.Previous)),
		),
		OutflowQty: services.ComputeTrend(
			float64(outflowQty(stockOuts, resolved.Current)),
			float64(outflowQty(stockOuts, resolved.Previous)),
		),
		NetValue: services.ComputeTrend(currentNet.InexactFloat64(), previousNet.InexactFloat64()),
	}
}

func buildRankings(products []*entities.Product, stockOuts []*entities.StockOutEvent, valuator *services.Valuator, window services.Window, topN int) ([]services.RankEntry, []services.RankEntry) {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	nameFor := func(productID int64) string {
		if name, ok := names[productID]; ok {
			return name
		}
		return "#" + strconv.FormatInt(productID, 10)
	}

	var byQty, byValue []services.MetricPoint
	for _, out := range stockOuts {
		if out.MovedAt.IsZero() || !window.Contains(out.MovedAt) {
			continue
		}
		key := nameFor(out.ProductID)
		byQty = append(byQty, services.MetricPoint{Key: key, Value: decimal.NewFromInt(out.Quantity)})
		byValue = append(byValue, services.MetricPoint{
			Key:   key,
			Value: valuator.StockOutUnitPrice(out).Mul(decimal.NewFromInt(out.Quantity)),
		})
	}

	return services.RankTop(byQty, topN), services.RankTop(byValue, topN)
}

// buildVarianceSummary summarizes the most recent count session. The count
// collection is secondary: failure yields no summary, not an error.
func buildVarianceSummary(countRepo repositories.CountRepository) *dto.VarianceSummary {
	if countRepo == nil {
		return nil
	}
	counts, err := countRepo.GetAllCounts()
	if err != nil {
		obs.Logger.Warn("inventory counts unavailable, skipping variance summary", "error", err)
		return nil
	}
	if len(counts) == 0 {
		return nil
	}

	latest := counts[0]
	for _, count := range counts[1:] {
		if count.CountedAt.After(latest.CountedAt) {
			latest = count
		}
	}

	summary := &dto.VarianceSummary{
		CountID:   latest.ID,
		Agent:     latest.Agent,
		CountedAt: latest.CountedAt,
	}
	for _, item := range latest.Items {
		switch item.VarianceStatus() {
		case entities.VariancePositive:
			summary.Positive++
		case entities.VarianceNegative:
			summary.Negative++
		default:
			summary.Conforming++
		}
	}
	return summary
}

func inflowQty(receipts []*entities.ReceiptEvent, window services.Window) int64 {
	var total int64
	for _, receipt := range receipts {
		if receipt.ReceivedAt.IsZero() || !window.Contains(receipt.ReceivedAt) {
			continue
		}
		total += receipt.TotalQuantity()
	}
	return total
}

func outflowQty(stockOuts []*entities.StockOutEvent, window services.Window) int64 {
	var total int64
	for _, out := range stockOuts {
		if out.MovedAt.IsZero() || !window.Contains(out.MovedAt) {
			continue
		}
		total += out.Quantity
	}
	return total
}
