package memory

import (
	"sort"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/repositories"
)

// MaintenanceRepository provides in-memory maintenance record storage
type MaintenanceRepository struct {
	records []entities.MaintenanceRecord
}

// NewMaintenanceRepository creates a new in-memory maintenance repository
func NewMaintenanceRepository() *MaintenanceRepository {
	return &MaintenanceRepository{
		records: []entities.MaintenanceRecord{},
	}
}

// Verify interface compliance
var _ repositories.MaintenanceRepository = (*MaintenanceRepository)(nil)

// LoadMaintenanceRecords loads maintenance records into the repository
func (r *MaintenanceRepository) LoadMaintenanceRecords(records []*entities.MaintenanceRecord) error {
	for _, record := range records {
		r.records = append(r.records, *record)
	}
	return nil
}

// GetAllMaintenanceRecords returns all records ordered by maintenance date
// ascending
func (r *MaintenanceRepository) GetAllMaintenanceRecords() ([]*entities.MaintenanceRecord, error) {
	var records []*entities.MaintenanceRecord
	for i := range r.records {
		records = append(records, &r.records[i])
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].MaintenanceDate.Before(records[j].MaintenanceDate)
	})
	return records, nil
}
