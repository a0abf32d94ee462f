package entities

// AlertSource identifies the record collection an alert was derived from
type AlertSource int

const (
	AlertSourceProduct AlertSource = iota
	AlertSourceMaintenance
)

// String method for AlertSource enum
func (s AlertSource) String() string {
	switch s {
	case AlertSourceProduct:
		return "Product"
	case AlertSourceMaintenance:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

// AlertKind represents the specific condition an alert reports
type AlertKind int

const (
	AlertStockLow AlertKind = iota
	AlertStockCritical
	AlertMaintenanceOverdue
	AlertMaintenanceUpcoming
)

// String method for AlertKind enum
func (k AlertKind) String() string {
	switch k {
	case AlertStockLow:
		return "stock-low"
	case AlertStockCritical:
		return "stock-critical"
	case AlertMaintenanceOverdue:
		return "maintenance-overdue"
	case AlertMaintenanceUpcoming:
		return "maintenance-upcoming"
	default:
		return "unknown"
	}
}

// Severity is a priority tier governing feed ordering. Lower values sort
// first: Critical before Info (upcoming maintenance) before Low (low stock).
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityInfo
	SeverityLow
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityInfo:
		return "Info"
	case SeverityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// MaintenanceIDOffset partitions the numeric alert id space between
// product-sourced and maintenance-sourced alerts. It must exceed any
// plausible product id; persisted read-state depends on it staying fixed.
const MaintenanceIDOffset int64 = 1_000_000

// AlertID is the canonical alert identity: the source collection plus the
// source record's id. The tagged pair cannot collide across sources even if
// a product id ever grows past MaintenanceIDOffset; the numeric encoding
// below exists only for the persisted wire format.
type AlertID struct {
	Source   AlertSource
	SourceID int64
}

// Numeric encodes the id into the legacy single-integer form used by the
// persisted read-state: product ids pass through, maintenance ids are
// shifted by MaintenanceIDOffset.
func (id AlertID) Numeric() int64 {
	if id.Source == AlertSourceMaintenance {
		return id.SourceID + MaintenanceIDOffset
	}
	return id.SourceID
}

// AlertIDFromNumeric decodes the legacy single-integer form. It is the
// inverse of Numeric as long as product ids stay below MaintenanceIDOffset.
func AlertIDFromNumeric(n int64) AlertID {
	if n >= MaintenanceIDOffset {
		return AlertID{Source: AlertSourceMaintenance, SourceID: n - MaintenanceIDOffset}
	}
	return AlertID{Source: AlertSourceProduct, SourceID: n}
}

// Alert is a synthetic, engine-produced record. It is never stored; identity
// is stable across recomputations over the same snapshot so that externally
// persisted read-state remains valid.
type Alert struct {
	ID       AlertID
	Kind     AlertKind
	Severity Severity
	Message  string

	// Source reference fields used for tie ordering within a severity tier.
	ProductName  string
	VehiclePlate string

	// DaysRemaining is set for upcoming-maintenance alerts only.
	DaysRemaining int
}
