// Package mysql loads dashboard snapshots from a MySQL database. The DSN
// must include parseTime=true so timestamp columns scan into time.Time.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/infrastructure/obs"
)

// Loader reads snapshot collections from a MySQL database
type Loader struct {
	db *sql.DB
}

// Open connects to the database and verifies the connection with a short
// ping before returning a Loader.
func Open(dsn string) (*Loader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Loader{db: db}, nil
}

// NewLoader wraps an existing database handle
func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Close releases the underlying database handle
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadProducts loads the product snapshot
func (l *Loader) LoadProducts(ctx context.Context) ([]*entities.Product, error) {
	query := `SELECT id, name, category, quantity, unit_price, critical_level
FROM products
ORDER BY id ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		var p entities.Product
		var unitPrice string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &unitPrice, &p.CriticalLevel); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid unit price %q: %w", p.ID, unitPrice, err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// LoadReceipts loads receipt events with their line items
func (l *Loader) LoadReceipts(ctx context.Context) ([]*entities.ReceiptEvent, error) {
	query := `SELECT r.id, r.received_at, ri.product_id, ri.quantity, ri.unit_price
FROM receipts r
JOIN receipt_items ri ON ri.receipt_id = r.id
ORDER BY r.id ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*entities.ReceiptEvent)
	var ordered []*entities.ReceiptEvent
	for rows.Next() {
		var id int64
		var receivedAt sql.NullTime
		var line entities.ReceiptLine
		var unitPrice string
		if err := rows.Scan(&id, &receivedAt, &line.ProductID, &line.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan receipt line: %w", err)
		}
		if !receivedAt.Valid {
			obs.Logger.Warn("skipping receipt with missing timestamp", "receipt_id", id)
			continue
		}
		line.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("receipt %d: invalid unit price %q: %w", id, unitPrice, err)
		}

		receipt, exists := byID[id]
		if !exists {
			receipt = &entities.ReceiptEvent{ID: id, ReceivedAt: receivedAt.Time.UTC()}
			byID[id] = receipt
			ordered = append(ordered, receipt)
		}
		receipt.Lines = append(receipt.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ordered, nil
}

// LoadStockOuts loads stock withdrawal events
func (l *Loader) LoadStockOuts(ctx context.Context) ([]*entities.StockOutEvent, error) {
	query := `SELECT id, product_id, quantity, unit_price, moved_at, beneficiary, exit_type
FROM stock_outs
ORDER BY id ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock-outs: %w", err)
	}
	defer rows.Close()

	var stockOuts []*entities.StockOutEvent
	for rows.Next() {
		var out entities.StockOutEvent
		var movedAt sql.NullTime
		var unitPrice, beneficiary, exitType sql.NullString
		if err := rows.Scan(&out.ID, &out.ProductID, &out.Quantity, &unitPrice, &movedAt, &beneficiary, &exitType); err != nil {
			return nil, fmt.Errorf("failed to scan stock-out: %w", err)
		}
		if !movedAt.Valid {
			obs.Logger.Warn("skipping stock-out with missing timestamp", "stock_out_id", out.ID)
			continue
		}
		out.MovedAt = movedAt.Time.UTC()
		out.Beneficiary = beneficiary.String
		out.ExitType = exitType.String
		if unitPrice.Valid {
			price, err := decimal.NewFromString(unitPrice.String)
			if err != nil {
				return nil, fmt.Errorf("stock-out %d: invalid unit price %q: %w", out.ID, unitPrice.String, err)
			}
			out.CapturedPrice = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		stockOuts = append(stockOuts, &out)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stockOuts, nil
}

// LoadCounts loads inventory count sessions with their items
func (l *Loader) LoadCounts(ctx context.Context) ([]*entities.InventoryCount, error) {
	query := `SELECT c.id, c.agent, c.counted_at, ci.product_id, ci.theoretical_qty, ci.counted_qty
FROM inventory_counts c
JOIN inventory_count_items ci ON ci.count_id = c.id
ORDER BY c.id ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*entities.InventoryCount)
	var ordered []*entities.InventoryCount
	for rows.Next() {
		var id int64
		var agent sql.NullString
		var countedAt sql.NullTime
		var item entities.CountItem
		if err := rows.Scan(&id, &agent, &countedAt, &item.ProductID, &item.TheoreticalQty, &item.CountedQty); err != nil {
			return nil, fmt.Errorf("failed to scan count item: %w", err)
		}
		if !countedAt.Valid {
			obs.Logger.Warn("skipping count with missing timestamp", "count_id", id)
			continue
		}

		count, exists := byID[id]
		if !exists {
			count = &entities.InventoryCount{ID: id, Agent: agent.String, CountedAt: countedAt.Time.UTC()}
			byID[id] = count
			ordered = append(ordered, count)
		}
		count.Items = append(count.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ordered, nil
}

// LoadMaintenanceRecords loads vehicle maintenance records
func (l *Loader) LoadMaintenanceRecords(ctx context.Context) ([]*entities.MaintenanceRecord, error) {
	query := `SELECT id, vehicle_plate, type, maintenance_date, next_maintenance_date, cost, agent
FROM maintenance_records
ORDER BY id ASC`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance records: %w", err)
	}
	defer rows.Close()

	var records []*entities.MaintenanceRecord
	for rows.Next() {
		var record entities.MaintenanceRecord
		var maintenanceDate, nextDate sql.NullTime
		var cost sql.NullString
		var agent sql.NullString
		if err := rows.Scan(&record.ID, &record.VehiclePlate, &record.Type, &maintenanceDate, &nextDate, &cost, &agent); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		if !maintenanceDate.Valid {
			obs.Logger.Warn("skipping maintenance record with missing date", "maintenance_id", record.ID)
			continue
		}
		record.MaintenanceDate = maintenanceDate.Time.UTC()
		record.Agent = agent.String
		if nextDate.Valid {
			next := nextDate.Time.UTC()
			record.NextMaintenanceDate = &next
		}
		if cost.Valid {
			record.Cost, err = decimal.NewFromString(cost.String)
			if err != nil {
				return nil, fmt.Errorf("maintenance %d: invalid cost %q: %w", record.ID, cost.String, err)
			}
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
