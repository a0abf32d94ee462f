package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/infrastructure/repositories/memory"
)

// BuildRetailTestData builds a small but complete retail snapshot: products
// at every stock level, a month of receipts and withdrawals around the
// reference date, one count session and maintenance records on both sides
// of the alert horizon.
func BuildRetailTestData(now time.Time) (*memory.ProductRepository, *memory.ReceiptRepository, *memory.StockOutRepository, *memory.CountRepository, *memory.MaintenanceRepository) {
	productRepo := memory.NewProductRepository()
	receiptRepo := memory.NewReceiptRepository()
	stockOutRepo := memory.NewStockOutRepository()
	countRepo := memory.NewCountRepository()
	maintenanceRepo := memory.NewMaintenanceRepository()

	products := []*entities.Product{
		{ID: 1, Name: "Gants nitrile", Category: "EPI", Quantity: 40, UnitPrice: decimal.NewFromFloat(3.50), CriticalLevel: 10},
		{ID: 2, Name: "Masques FFP2", Category: "EPI", Quantity: 0, UnitPrice: decimal.NewFromFloat(0.75), CriticalLevel: 20},
		{ID: 3, Name: "Gel hydroalcoolique", Category: "Hygiène", Quantity: 5, UnitPrice: decimal.NewFromFloat(2.20), CriticalLevel: 8},
		{ID: 4, Name: "Sacs poubelle", Category: "Consommables", Quantity: 200, UnitPrice: decimal.NewFromFloat(0.15), CriticalLevel: 50},
	}
	_ = productRepo.LoadProducts(products)

	receipts := []*entities.ReceiptEvent{
		{
			ID:         1,
			ReceivedAt: now.AddDate(0, 0, -20),
			Lines: []entities.ReceiptLine{
				{ProductID: 1, Quantity: 50, UnitPrice: decimal.NewFromFloat(3.50)},
				{ProductID: 3, Quantity: 12, UnitPrice: decimal.NewFromFloat(2.20)},
			},
		},
		{
			ID:         2,
			ReceivedAt: now.AddDate(0, 0, -6),
			Lines: []entities.ReceiptLine{
				{ProductID: 4, Quantity: 100, UnitPrice: decimal.NewFromFloat(0.15)},
			},
		},
		{
			// previous-window receipt for trend comparisons
			ID:         3,
			ReceivedAt: now.AddDate(0, 0, -45),
			Lines: []entities.ReceiptLine{
				{ProductID: 1, Quantity: 30, UnitPrice: decimal.NewFromFloat(3.40)},
			},
		},
	}
	_ = receiptRepo.LoadReceipts(receipts)

	stockOuts := []*entities.StockOutEvent{
		{ID: 1, ProductID: 1, Quantity: 10, MovedAt: now.AddDate(0, 0, -15), Beneficiary: "Atelier", ExitType: "consommation"},
		{ID: 2, ProductID: 3, Quantity: 7, MovedAt: now.AddDate(0, 0, -10), Beneficiary: "Entretien", ExitType: "consommation"},
		{ID: 3, ProductID: 1, Quantity: 5, MovedAt: now.AddDate(0, 0, -3), CapturedPrice: decimal.NullDecimal{Decimal: decimal.NewFromFloat(3.60), Valid: true}},
		{ID: 4, ProductID: 4, Quantity: 40, MovedAt: now.AddDate(0, 0, -40), Beneficiary: "Atelier"},
	}
	_ = stockOutRepo.LoadStockOuts(stockOuts)

	counts := []*entities.InventoryCount{
		{
			ID:        1,
			Agent:     "Dupont",
			CountedAt: now.AddDate(0, 0, -2),
			Items: []entities.CountItem{
				{ProductID: 1, TheoreticalQty: 40, CountedQty: 38},
				{ProductID: 3, TheoreticalQty: 5, CountedQty: 5},
				{ProductID: 4, TheoreticalQty: 200, CountedQty: 205},
			},
		},
	}
	_ = countRepo.LoadCounts(counts)

	overdue := now.AddDate(0, 0, -1)
	upcoming := now.AddDate(0, 0, 4)
	farAway := now.AddDate(0, 2, 0)
	records := []*entities.MaintenanceRecord{
		{ID: 9, VehiclePlate: "AB-123-CD", Type: "vidange", MaintenanceDate: now.AddDate(0, -6, 0), NextMaintenanceDate: &overdue, Cost: decimal.NewFromInt(120), Agent: "Martin"},
		{ID: 10, VehiclePlate: "EF-456-GH", Type: "freins", MaintenanceDate: now.AddDate(0, -3, 0), NextMaintenanceDate: &upcoming, Cost: decimal.NewFromInt(80), Agent: "Martin"},
		{ID: 11, VehiclePlate: "IJ-789-KL", Type: "pneus", MaintenanceDate: now.AddDate(0, -1, 0), NextMaintenanceDate: &farAway, Cost: decimal.NewFromInt(300), Agent: "Dupont"},
		{ID: 12, VehiclePlate: "MN-012-OP", Type: "contrôle", MaintenanceDate: now.AddDate(0, -2, 0), Cost: decimal.NewFromInt(60), Agent: "Dupont"},
	}
	_ = maintenanceRepo.LoadMaintenanceRecords(records)

	return productRepo, receiptRepo, stockOutRepo, countRepo, maintenanceRepo
}
