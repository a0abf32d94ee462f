package services

import "math"

// TrendDirection indicates the direction of a period-over-period comparison
type TrendDirection int

const (
	TrendDown TrendDirection = iota
	TrendUp
)

// String method for TrendDirection enum
func (d TrendDirection) String() string {
	switch d {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "unknown"
	}
}

// Trend is a directional, magnitude-only percentage comparison between a
// current and a prior period's value.
type Trend struct {
	Percent   float64        `json:"percent"`
	Direction TrendDirection `json:"direction"`
}

// ComputeTrend converts a (current, previous) pair into a signed-direction
// percentage change. Total over all inputs: a zero previous value takes an
// explicit branch instead of dividing, so the function never divides by zero.
//
//	previous == 0: 100% up if current > 0, otherwise 0% down
//	previous != 0: |(current-previous)/previous| * 100, up iff current > previous
func ComputeTrend(current, previous float64) Trend {
	if previous == 0 {
		if current > 0 {
			return Trend{Percent: 100, Direction: TrendUp}
		}
		return Trend{Percent: 0, Direction: TrendDown}
	}

	percent := math.Abs((current-previous)/previous) * 100
	direction := TrendDown
	if current > previous {
		direction = TrendUp
	}
	return Trend{Percent: percent, Direction: direction}
}
