package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRecord represents one vehicle maintenance intervention.
// NextMaintenanceDate is nil when no follow-up has been scheduled.
type MaintenanceRecord struct {
	ID                  int64
	VehiclePlate        string
	Type                string
	MaintenanceDate     time.Time
	NextMaintenanceDate *time.Time
	Cost                decimal.Decimal
	Agent               string
}

// NewMaintenanceRecord creates a validated MaintenanceRecord
func NewMaintenanceRecord(id int64, vehiclePlate, maintenanceType string, maintenanceDate time.Time, cost decimal.Decimal) (*MaintenanceRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("maintenance id must be positive, got %d", id)
	}
	if vehiclePlate == "" {
		return nil, fmt.Errorf("vehicle plate cannot be empty")
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("cost cannot be negative, got %s", cost)
	}

	return &MaintenanceRecord{
		ID:              id,
		VehiclePlate:    vehiclePlate,
		Type:            maintenanceType,
		MaintenanceDate: maintenanceDate,
		Cost:            cost,
	}, nil
}
