package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/stocksight/stocksight/pkg/domain/entities"
)

// DefaultMaintenanceHorizonDays is how far ahead upcoming maintenance is
// announced.
const DefaultMaintenanceHorizonDays = 7

// MaintenanceDue is the classification of one maintenance record against a
// reference day.
type MaintenanceDue struct {
	Kind          entities.AlertKind
	Severity      entities.Severity
	DaysRemaining int
}

// MaintenanceStatus classifies a maintenance record. Records without a
// scheduled next date never alert. A next date at or before today is
// overdue (Critical); a next date within the horizon is upcoming (Info)
// with DaysRemaining rounded up to whole days.
func MaintenanceStatus(record *entities.MaintenanceRecord, today time.Time, horizonDays int) (MaintenanceDue, bool) {
	if record.NextMaintenanceDate == nil {
		return MaintenanceDue{}, false
	}

	next := *record.NextMaintenanceDate
	if !next.After(today) {
		return MaintenanceDue{
			Kind:     entities.AlertMaintenanceOverdue,
			Severity: entities.SeverityCritical,
		}, true
	}

	horizon := today.AddDate(0, 0, horizonDays)
	if !next.After(horizon) {
		days := int(math.Ceil(next.Sub(today).Hours() / 24))
		return MaintenanceDue{
			Kind:          entities.AlertMaintenanceUpcoming,
			Severity:      entities.SeverityInfo,
			DaysRemaining: days,
		}, true
	}

	return MaintenanceDue{}, false
}

// AlertClassifier turns product and maintenance snapshots into a unified,
// severity-ranked alert feed. It is pure: read/unread tracking is a function
// of an externally supplied acknowledged-id set, never of classifier state.
type AlertClassifier struct {
	horizonDays int
}

// NewAlertClassifier creates a classifier with the default maintenance
// horizon
func NewAlertClassifier() *AlertClassifier {
	return &AlertClassifier{horizonDays: DefaultMaintenanceHorizonDays}
}

// NewAlertClassifierWithHorizon creates a classifier with a custom horizon
func NewAlertClassifierWithHorizon(horizonDays int) *AlertClassifier {
	if horizonDays <= 0 {
		horizonDays = DefaultMaintenanceHorizonDays
	}
	return &AlertClassifier{horizonDays: horizonDays}
}

// BuildFeed classifies every product and maintenance record and merges the
// results into one ordered feed: Critical alerts first (stock-critical and
// maintenance-overdue), then upcoming maintenance, then low stock. Within a
// severity tier stock-sourced alerts come before maintenance-sourced ones;
// stock ties order by product name ascending (case-folded), maintenance
// ties by vehicle plate ascending with an empty-string fallback.
func (c *AlertClassifier) BuildFeed(products []*entities.Product, records []*entities.MaintenanceRecord, today time.Time) []entities.Alert {
	feed := make([]entities.Alert, 0, len(products)+len(records))

	for _, p := range products {
		switch p.StockStatus() {
		case entities.StockCritical:
			feed = append(feed, entities.Alert{
				ID:          entities.AlertID{Source: entities.AlertSourceProduct, SourceID: p.ID},
				Kind:        entities.AlertStockCritical,
				Severity:    entities.SeverityCritical,
				Message:     fmt.Sprintf("Rupture de stock : %s", p.Name),
				ProductName: p.Name,
			})
		case entities.StockLow:
			feed = append(feed, entities.Alert{
				ID:          entities.AlertID{Source: entities.AlertSourceProduct, SourceID: p.ID},
				Kind:        entities.AlertStockLow,
				Severity:    entities.SeverityLow,
				Message:     fmt.Sprintf("Stock faible : %s (%d en stock, seuil %d)", p.Name, p.Quantity, p.CriticalLevel),
				ProductName: p.Name,
			})
		}
	}

	for _, record := range records {
		due, ok := MaintenanceStatus(record, today, c.horizonDays)
		if !ok {
			continue
		}

		alert := entities.Alert{
			ID:            entities.AlertID{Source: entities.AlertSourceMaintenance, SourceID: record.ID},
			Kind:          due.Kind,
			Severity:      due.Severity,
			VehiclePlate:  record.VehiclePlate,
			DaysRemaining: due.DaysRemaining,
		}
		switch due.Kind {
		case entities.AlertMaintenanceOverdue:
			alert.Message = fmt.Sprintf("Maintenance en retard : %s (%s)", record.VehiclePlate, record.Type)
		case entities.AlertMaintenanceUpcoming:
			alert.Message = fmt.Sprintf("Maintenance à prévoir : %s dans %d jour(s)", record.VehiclePlate, due.DaysRemaining)
		}
		feed = append(feed, alert)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return alertLess(feed[i], feed[j])
	})
	return feed
}

// alertLess implements the feed priority ordering
func alertLess(a, b entities.Alert) bool {
	if a.Severity != b.Severity {
		return a.Severity < b.Severity
	}
	if a.ID.Source != b.ID.Source {
		return a.ID.Source < b.ID.Source
	}
	if a.ID.Source == entities.AlertSourceProduct {
		return strings.ToLower(a.ProductName) < strings.ToLower(b.ProductName)
	}
	return a.VehiclePlate < b.VehiclePlate
}

// ReadPartition is the feed split by acknowledged state, with unread counts
// broken out by alert family.
type ReadPartition struct {
	Unread []entities.Alert `json:"unread"`
	Read   []entities.Alert `json:"read"`

	UnreadCritical    int `json:"unread_critical"`
	UnreadLowStock    int `json:"unread_low_stock"`
	UnreadMaintenance int `json:"unread_maintenance"`
}

// PartitionRead splits a feed by an externally supplied set of acknowledged
// numeric alert ids. Pure function of (feed, readIDs): mutating the set is
// the caller's responsibility, the classifier only consumes the result.
func PartitionRead(feed []entities.Alert, readIDs map[int64]struct{}) ReadPartition {
	part := ReadPartition{
		Unread: make([]entities.Alert, 0, len(feed)),
		Read:   make([]entities.Alert, 0),
	}

	for _, alert := range feed {
		if _, ok := readIDs[alert.ID.Numeric()]; ok {
			part.Read = append(part.Read, alert)
			continue
		}
		part.Unread = append(part.Unread, alert)

		switch alert.ID.Source {
		case entities.AlertSourceMaintenance:
			part.UnreadMaintenance++
		default:
			if alert.Severity == entities.SeverityCritical {
				part.UnreadCritical++
			} else {
				part.UnreadLowStock++
			}
		}
	}
	return part
}
