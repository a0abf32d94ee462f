package services

import "testing"

func TestComputeTrend(t *testing.T) {
	testCases := []struct {
		name      string
		current   float64
		previous  float64
		percent   float64
		direction TrendDirection
	}{
		{"both zero", 0, 0, 0, TrendDown},
		{"growth from zero", 10, 0, 100, TrendUp},
		{"halved", 50, 100, 50, TrendDown},
		{"doubled", 100, 50, 100, TrendUp},
		{"unchanged", 30, 30, 0, TrendDown},
		{"drop to zero", 0, 80, 100, TrendDown},
		{"negative previous", 10, -10, 200, TrendUp},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trend := ComputeTrend(tc.current, tc.previous)
			if trend.Percent != tc.percent {
				t.Errorf("ComputeTrend(%v, %v).Percent = %v, want %v", tc.current, tc.previous, trend.Percent, tc.percent)
			}
			if trend.Direction != tc.direction {
				t.Errorf("ComputeTrend(%v, %v).Direction = %s, want %s", tc.current, tc.previous, trend.Direction, tc.direction)
			}
			if trend.Percent < 0 {
				t.Errorf("trend magnitude must never be negative, got %v", trend.Percent)
			}
		})
	}
}
