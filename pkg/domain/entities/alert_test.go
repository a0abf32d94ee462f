package entities

import "testing"

func TestAlertID_NumericEncoding(t *testing.T) {
	testCases := []struct {
		name     string
		id       AlertID
		expected int64
	}{
		{"product id passes through", AlertID{AlertSourceProduct, 42}, 42},
		{"maintenance id is offset", AlertID{AlertSourceMaintenance, 9}, 9 + MaintenanceIDOffset},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.id.Numeric(); got != tc.expected {
				t.Errorf("Numeric() = %d, want %d", got, tc.expected)
			}
			if decoded := AlertIDFromNumeric(tc.id.Numeric()); decoded != tc.id {
				t.Errorf("AlertIDFromNumeric(Numeric()) = %+v, want %+v", decoded, tc.id)
			}
		})
	}
}

func TestAlertID_NoCollisionBelowOffset(t *testing.T) {
	// A product and a maintenance record sharing the same source id must
	// still yield distinct numeric ids while product ids stay below the
	// offset.
	product := AlertID{AlertSourceProduct, 9}
	maintenance := AlertID{AlertSourceMaintenance, 9}

	if product.Numeric() == maintenance.Numeric() {
		t.Errorf("numeric ids collide: product=%d maintenance=%d", product.Numeric(), maintenance.Numeric())
	}
	if product != AlertIDFromNumeric(product.Numeric()) {
		t.Error("product id did not round trip")
	}
	if maintenance != AlertIDFromNumeric(maintenance.Numeric()) {
		t.Error("maintenance id did not round trip")
	}
}

func TestCountItem_Variance(t *testing.T) {
	testCases := []struct {
		name        string
		theoretical int64
		counted     int64
		variance    int64
		status      VarianceStatus
	}{
		{"surplus", 10, 12, 2, VariancePositive},
		{"shortage", 10, 7, -3, VarianceNegative},
		{"conforming", 10, 10, 0, VarianceConforming},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := CountItem{ProductID: 1, TheoreticalQty: tc.theoretical, CountedQty: tc.counted}
			if got := item.Variance(); got != tc.variance {
				t.Errorf("Variance() = %d, want %d", got, tc.variance)
			}
			if got := item.VarianceStatus(); got != tc.status {
				t.Errorf("VarianceStatus() = %s, want %s", got, tc.status)
			}
		})
	}
}
