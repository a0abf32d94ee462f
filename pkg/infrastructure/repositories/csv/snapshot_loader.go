package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/infrastructure/obs"
)

// Loader handles loading dashboard snapshots from CSV files.
//
// Structural problems (missing file, bad header, wrong column count) fail
// loudly. A row whose timestamp does not parse is skipped with a warning:
// one bad record never aborts the batch.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads the product snapshot from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readCSV(filename, []string{"id", "name", "category", "quantity", "unit_price", "critical_level"})
	if err != nil {
		return nil, fmt.Errorf("products CSV: %w", err)
	}

	var products []*entities.Product
	for i, record := range records {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid id %q", i+2, record[0])
		}
		quantity, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid quantity %q", i+2, record[3])
		}
		unitPrice, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid unit price %q", i+2, record[4])
		}
		criticalLevel, err := strconv.ParseInt(record[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid critical level %q", i+2, record[5])
		}

		products = append(products, &entities.Product{
			ID:            id,
			Name:          record[1],
			Category:      record[2],
			Quantity:      quantity,
			UnitPrice:     unitPrice,
			CriticalLevel: criticalLevel,
		})
	}
	return products, nil
}

// LoadReceipts loads receipt events from a CSV file. The file carries one
// row per line item; rows sharing a receipt_id form one receipt.
func (l *Loader) LoadReceipts(filename string) ([]*entities.ReceiptEvent, error) {
	records, err := readCSV(filename, []string{"receipt_id", "received_at", "product_id", "quantity", "unit_price"})
	if err != nil {
		return nil, fmt.Errorf("receipts CSV: %w", err)
	}

	receipts := make(map[int64]*entities.ReceiptEvent)
	for i, record := range records {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid receipt id %q", i+2, record[0])
		}
		receivedAt, ok := parseTimestamp(record[1], "receipts", i+2)
		if !ok {
			continue
		}
		productID, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid product id %q", i+2, record[2])
		}
		quantity, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid quantity %q", i+2, record[3])
		}
		unitPrice := decimal.Zero
		if record[4] != "" {
			unitPrice, err = decimal.NewFromString(record[4])
			if err != nil {
				return nil, fmt.Errorf("receipts CSV row %d: invalid unit price %q", i+2, record[4])
			}
		}

		receipt, exists := receipts[id]
		if !exists {
			receipt = &entities.ReceiptEvent{ID: id, ReceivedAt: receivedAt}
			receipts[id] = receipt
		}
		receipt.Lines = append(receipt.Lines, entities.ReceiptLine{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	ordered := make([]*entities.ReceiptEvent, 0, len(receipts))
	for _, receipt := range receipts {
		ordered = append(ordered, receipt)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered, nil
}

// LoadStockOuts loads stock withdrawals from a CSV file
func (l *Loader) LoadStockOuts(filename string) ([]*entities.StockOutEvent, error) {
	records, err := readCSV(filename, []string{"id", "product_id", "quantity", "unit_price", "moved_at", "beneficiary", "exit_type"})
	if err != nil {
		return nil, fmt.Errorf("stock-outs CSV: %w", err)
	}

	var stockOuts []*entities.StockOutEvent
	for i, record := range records {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stock-outs CSV row %d: invalid id %q", i+2, record[0])
		}
		productID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stock-outs CSV row %d: invalid product id %q", i+2, record[1])
		}
		quantity, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stock-outs CSV row %d: invalid quantity %q", i+2, record[2])
		}
		movedAt, ok := parseTimestamp(record[4], "stock-outs", i+2)
		if !ok {
			continue
		}

		out := &entities.StockOutEvent{
			ID:          id,
			ProductID:   productID,
			Quantity:    quantity,
			MovedAt:     movedAt,
			Beneficiary: record[5],
			ExitType:    record[6],
		}
		if record[3] != "" {
			price, err := decimal.NewFromString(record[3])
			if err != nil {
				return nil, fmt.Errorf("stock-outs CSV row %d: invalid unit price %q", i+2, record[3])
			}
			out.CapturedPrice = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		stockOuts = append(stockOuts, out)
	}
	return stockOuts, nil
}

// LoadCounts loads inventory count sessions from a CSV file. The file
// carries one row per counted item; rows sharing a count_id form one
// session.
func (l *Loader) LoadCounts(filename string) ([]*entities.InventoryCount, error) {
	records, err := readCSV(filename, []string{"count_id", "agent", "counted_at", "product_id", "theoretical_qty", "counted_qty"})
	if err != nil {
		return nil, fmt.Errorf("counts CSV: %w", err)
	}

	counts := make(map[int64]*entities.InventoryCount)
	for i, record := range records {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counts CSV row %d: invalid count id %q", i+2, record[0])
		}
		countedAt, ok := parseTimestamp(record[2], "counts", i+2)
		if !ok {
			continue
		}
		productID, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counts CSV row %d: invalid product id %q", i+2, record[3])
		}
		theoretical, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counts CSV row %d: invalid theoretical qty %q", i+2, record[4])
		}
		counted, err := strconv.ParseInt(record[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counts CSV row %d: invalid counted qty %q", i+2, record[5])
		}

		count, exists := counts[id]
		if !exists {
			count = &entities.InventoryCount{ID: id, Agent: record[1], CountedAt: countedAt}
			counts[id] = count
		}
		count.Items = append(count.Items, entities.CountItem{
			ProductID:      productID,
			TheoreticalQty: theoretical,
			CountedQty:     counted,
		})
	}

	ordered := make([]*entities.InventoryCount, 0, len(counts))
	for _, count := range counts {
		ordered = append(ordered, count)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered, nil
}

// LoadMaintenanceRecords loads vehicle maintenance records from a CSV file
func (l *Loader) LoadMaintenanceRecords(filename string) ([]*entities.MaintenanceRecord, error) {
	records, err := readCSV(filename, []string{"id", "vehicle_plate", "type", "maintenance_date", "next_maintenance_date", "cost", "agent"})
	if err != nil {
		return nil, fmt.Errorf("maintenance CSV: %w", err)
	}

	var out []*entities.MaintenanceRecord
	for i, record := range records {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("maintenance CSV row %d: invalid id %q", i+2, record[0])
		}
		maintenanceDate, ok := parseTimestamp(record[3], "maintenance", i+2)
		if !ok {
			continue
		}
		cost := decimal.Zero
		if record[5] != "" {
			cost, err = decimal.NewFromString(record[5])
			if err != nil {
				return nil, fmt.Errorf("maintenance CSV row %d: invalid cost %q", i+2, record[5])
			}
		}

		mrec := &entities.MaintenanceRecord{
			ID:              id,
			VehiclePlate:    record[1],
			Type:            record[2],
			MaintenanceDate: maintenanceDate,
			Cost:            cost,
			Agent:           record[6],
		}
		if record[4] != "" {
			if next, ok := parseTimestamp(record[4], "maintenance", i+2); ok {
				mrec.NextMaintenanceDate = &next
			}
		}
		out = append(out, mrec)
	}
	return out, nil
}

// readCSV reads a file, validates its header and returns the data rows
func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

// validateHeader checks that the actual header matches the expected one
func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}

// timestampLayouts are the accepted forms, tried in order
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses one timestamp field. An unparsable value is the
// soft-fail case: the row is reported skipped and the batch continues.
func parseTimestamp(value, file string, row int) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	obs.Logger.Warn("skipping row with unparsable timestamp", "file", file, "row", row, "value", value)
	return time.Time{}, false
}
