package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appservices "github.com/stocksight/stocksight/pkg/application/services"
	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/services"
	"github.com/stocksight/stocksight/pkg/infrastructure/events"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Create repositories
	productRepo := memory.NewProductRepository()
	receiptRepo := memory.NewReceiptRepository()
	stockOutRepo := memory.NewStockOutRepository()
	countRepo := memory.NewCountRepository()
	maintenanceRepo := memory.NewMaintenanceRepository()

	// Set up a small warehouse snapshot
	setupWarehouse(productRepo, receiptRepo, stockOutRepo, maintenanceRepo, now)

	// Create the dashboard service with in-memory state
	service := appservices.NewDashboardService(
		memory.NewReadStateRepository(),
		events.NewInMemoryEventStore(),
	)

	snapshot := appservices.Snapshot{
		Products:    productRepo,
		Receipts:    receiptRepo,
		StockOuts:   stockOutRepo,
		Counts:      countRepo,
		Maintenance: maintenanceRepo,
	}

	fmt.Println("📊 Computing 30-day dashboard...")
	result, err := service.BuildDashboard(ctx, services.Period30Days, now, snapshot)
	if err != nil {
		fmt.Printf("❌ Dashboard failed: %v\n", err)
		return
	}
	service.Commit(result)

	fmt.Printf("Products: %d, stock value: %s\n",
		result.KPIs.ProductCount, result.KPIs.TotalStockValue.StringFixed(2))
	fmt.Printf("Inflow: %d units, outflow: %d units\n",
		result.KPIs.InflowQty, result.KPIs.OutflowQty)
	fmt.Printf("Net value trend: %.1f%% %s\n",
		result.Trends.NetValue.Percent, result.Trends.NetValue.Direction)
	fmt.Println()

	fmt.Printf("🔔 Alert feed (%d entries):\n", len(result.Feed))
	for _, alert := range result.Feed {
		fmt.Printf("  [%s] %s\n", alert.Severity, alert.Message)
	}

	// Acknowledge the first alert and recompute the read partition
	if len(result.Feed) > 0 {
		if err := service.MarkAlertRead(result.Feed[0].ID); err != nil {
			fmt.Printf("❌ Acknowledge failed: %v\n", err)
			return
		}
		fmt.Printf("\nAcknowledged alert %d\n", result.Feed[0].ID.Numeric())
	}
}

func setupWarehouse(
	productRepo *memory.ProductRepository,
	receiptRepo *memory.ReceiptRepository,
	stockOutRepo *memory.StockOutRepository,
	maintenanceRepo *memory.MaintenanceRepository,
	now time.Time,
) {
	products := []*entities.Product{
		{ID: 1, Name: "Gants nitrile", Category: "EPI", Quantity: 35, UnitPrice: decimal.NewFromFloat(3.50), CriticalLevel: 10},
		{ID: 2, Name: "Masques FFP2", Category: "EPI", Quantity: 0, UnitPrice: decimal.NewFromFloat(0.75), CriticalLevel: 20},
		{ID: 3, Name: "Gel hydroalcoolique", Category: "Hygiène", Quantity: 6, UnitPrice: decimal.NewFromFloat(2.20), CriticalLevel: 8},
	}
	_ = productRepo.LoadProducts(products)

	receipts := []*entities.ReceiptEvent{
		{
			ID:         1,
			ReceivedAt: now.AddDate(0, 0, -12),
			Lines: []entities.ReceiptLine{
				{ProductID: 1, Quantity: 40, UnitPrice: decimal.NewFromFloat(3.50)},
				{ProductID: 3, Quantity: 10, UnitPrice: decimal.NewFromFloat(2.20)},
			},
		},
		{
			ID:         2,
			ReceivedAt: now.AddDate(0, 0, -40),
			Lines: []entities.ReceiptLine{
				{ProductID: 1, Quantity: 25, UnitPrice: decimal.NewFromFloat(3.40)},
			},
		},
	}
	_ = receiptRepo.LoadReceipts(receipts)

	stockOuts := []*entities.StockOutEvent{
		{ID: 1, ProductID: 1, Quantity: 5, MovedAt: now.AddDate(0, 0, -8), Beneficiary: "Atelier", ExitType: "consommation"},
		{ID: 2, ProductID: 3, Quantity: 4, MovedAt: now.AddDate(0, 0, -2), Beneficiary: "Entretien", ExitType: "consommation"},
	}
	_ = stockOutRepo.LoadStockOuts(stockOuts)

	overdue := now.AddDate(0, 0, -2)
	records := []*entities.MaintenanceRecord{
		{
			ID:                  1,
			VehiclePlate:        "AB-123-CD",
			Type:                "vidange",
			MaintenanceDate:     now.AddDate(0, -6, 0),
			NextMaintenanceDate: &overdue,
			Cost:                decimal.NewFromFloat(120),
			Agent:               "Martin",
		},
	}
	_ = maintenanceRepo.LoadMaintenanceRecords(records)
}
