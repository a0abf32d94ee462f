package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/stocksight/stocksight/pkg/application/services"
	"github.com/stocksight/stocksight/pkg/domain/entities"
	domainservices "github.com/stocksight/stocksight/pkg/domain/services"
	"github.com/stocksight/stocksight/pkg/infrastructure/events"
	"github.com/stocksight/stocksight/pkg/infrastructure/readstate"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/csv"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/memory"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/mysql"
	"github.com/stocksight/stocksight/pkg/interfaces/cli/output"
)

// Config holds configuration for the dashboard command
type Config struct {
	CSVDir                 string
	MySQLDSN               string
	StateDir               string
	Period                 string
	AsOf                   string
	Format                 string
	AckIDs                 string
	AckAll                 bool
	MaintenanceHorizonDays int
	TopN                   int
	Help                   bool
}

// DashboardCommand loads a snapshot, computes the dashboard and renders it
type DashboardCommand struct {
	config Config
}

// NewDashboardCommand creates a new dashboard command with the given
// configuration
func NewDashboardCommand(config Config) *DashboardCommand {
	return &DashboardCommand{config: config}
}

// Execute runs the dashboard command
func (c *DashboardCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.CSVDir == "" && c.config.MySQLDSN == "" {
		return fmt.Errorf("no snapshot source: set -csv or -dsn")
	}

	period, err := domainservices.ParsePeriod(c.config.Period)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if c.config.AsOf != "" {
		now, err = time.Parse(time.RFC3339, c.config.AsOf)
		if err != nil {
			return fmt.Errorf("invalid -as-of instant: %w", err)
		}
		now = now.UTC()
	}

	snapshot, loaded, err := c.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	stateDir := c.config.StateDir
	if stateDir == "" {
		stateDir = "."
	}
	readStateStore := readstate.NewFileStore(stateDir)

	eventStore := events.NewInMemoryEventStore()
	if err := eventStore.AppendEvent(events.DashboardStream, events.NewEvent(events.SnapshotLoadedEvent, events.DashboardStream, loaded)); err != nil {
		return fmt.Errorf("failed to record snapshot load: %w", err)
	}

	service := services.NewDashboardServiceWithConfig(readStateStore, eventStore, services.DashboardConfig{
		MaintenanceHorizonDays: c.config.MaintenanceHorizonDays,
		TopN:                   c.config.TopN,
	})

	result, err := service.BuildDashboard(ctx, period, now, snapshot)
	if err != nil {
		return fmt.Errorf("dashboard computation failed: %w", err)
	}
	service.Commit(result)

	if err := c.applyAcknowledgements(service, result.Feed); err != nil {
		return err
	}

	return output.Render(result, output.Config{Format: c.config.Format})
}

// loadSnapshot builds in-memory repositories from the configured source
func (c *DashboardCommand) loadSnapshot(ctx context.Context) (services.Snapshot, events.SnapshotLoaded, error) {
	if c.config.MySQLDSN != "" {
		return c.loadFromMySQL(ctx)
	}
	return c.loadFromCSV()
}

func (c *DashboardCommand) loadFromCSV() (services.Snapshot, events.SnapshotLoaded, error) {
	loader := csv.NewLoader()
	dir := c.config.CSVDir

	products, err := loader.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading products: %w", err)
	}
	receipts, err := loader.LoadReceipts(filepath.Join(dir, "receipts.csv"))
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading receipts: %w", err)
	}
	stockOuts, err := loader.LoadStockOuts(filepath.Join(dir, "stock_outs.csv"))
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading stock-outs: %w", err)
	}
	counts, err := loader.LoadCounts(filepath.Join(dir, "counts.csv"))
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading counts: %w", err)
	}
	records, err := loader.LoadMaintenanceRecords(filepath.Join(dir, "maintenance.csv"))
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading maintenance records: %w", err)
	}

	return buildSnapshot("csv", products, receipts, stockOuts, counts, records)
}

func (c *DashboardCommand) loadFromMySQL(ctx context.Context) (services.Snapshot, events.SnapshotLoaded, error) {
	loader, err := mysql.Open(c.config.MySQLDSN)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}
	defer loader.Close()

	products, err := loader.LoadProducts(ctx)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading products: %w", err)
	}
	receipts, err := loader.LoadReceipts(ctx)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading receipts: %w", err)
	}
	stockOuts, err := loader.LoadStockOuts(ctx)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading stock-outs: %w", err)
	}
	counts, err := loader.LoadCounts(ctx)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading counts: %w", err)
	}
	records, err := loader.LoadMaintenanceRecords(ctx)
	if err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, fmt.Errorf("error loading maintenance records: %w", err)
	}

	return buildSnapshot("mysql", products, receipts, stockOuts, counts, records)
}

func buildSnapshot(source string, products []*entities.Product, receipts []*entities.ReceiptEvent, stockOuts []*entities.StockOutEvent, counts []*entities.InventoryCount, records []*entities.MaintenanceRecord) (services.Snapshot, events.SnapshotLoaded, error) {
	productRepo := memory.NewProductRepository()
	receiptRepo := memory.NewReceiptRepository()
	stockOutRepo := memory.NewStockOutRepository()
	countRepo := memory.NewCountRepository()
	maintenanceRepo := memory.NewMaintenanceRepository()

	if err := productRepo.LoadProducts(products); err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}
	if err := receiptRepo.LoadReceipts(receipts); err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}
	if err := stockOutRepo.LoadStockOuts(stockOuts); err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}
	if err := countRepo.LoadCounts(counts); err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}
	if err := maintenanceRepo.LoadMaintenanceRecords(records); err != nil {
		return services.Snapshot{}, events.SnapshotLoaded{}, err
	}

	snapshot := services.Snapshot{
		Products:    productRepo,
		Receipts:    receiptRepo,
		StockOuts:   stockOutRepo,
		Counts:      countRepo,
		Maintenance: maintenanceRepo,
	}
	loaded := events.SnapshotLoaded{
		Source:    source,
		Products:  len(products),
		Receipts:  len(receipts),
		StockOuts: len(stockOuts),
		Counts:    len(counts),
		Records:   len(records),
	}
	return snapshot, loaded, nil
}

// applyAcknowledgements handles -ack and -ack-all
func (c *DashboardCommand) applyAcknowledgements(service *services.DashboardService, feed []entities.Alert) error {
	if c.config.AckAll {
		return service.MarkAllRead(feed)
	}
	if c.config.AckIDs == "" {
		return nil
	}

	for _, field := range strings.Split(c.config.AckIDs, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		numeric, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid alert id %q", field)
		}
		if err := service.MarkAlertRead(entities.AlertIDFromNumeric(numeric)); err != nil {
			return err
		}
	}
	return nil
}

func (c *DashboardCommand) showHelp() {
	fmt.Println(`stocksight - inventory analytics dashboard

Usage:
  stocksight -csv DIR [options]
  stocksight -dsn DSN [options]

Snapshot sources:
  -csv string    Directory with products.csv, receipts.csv, stock_outs.csv,
                 counts.csv and maintenance.csv
  -dsn string    MySQL DSN (must include parseTime=true)

Options:
  -period string    Analysis period: 7d, 30d, 3m, 6m, 1y, all (default "30d")
  -as-of string     Reference instant, RFC3339 (default: now)
  -format string    Output format: text, json (default "text")
  -state string     Directory for the acknowledged-alert store (default ".")
  -ack string       Comma-separated numeric alert ids to acknowledge
  -ack-all          Acknowledge every alert in the computed feed
  -help             Show this message`)
}
