package repositories

import "github.com/stocksight/stocksight/pkg/domain/entities"

// MaintenanceRepository provides access to vehicle maintenance records
type MaintenanceRepository interface {
	GetAllMaintenanceRecords() ([]*entities.MaintenanceRecord, error)
	LoadMaintenanceRecords(records []*entities.MaintenanceRecord) error
}
