package services

import (
	"sort"
	"time"

	"github.com/stocksight/stocksight/pkg/domain/entities"
)

// Bucket is one time-axis group of movement quantities. Key is an opaque
// grouping identifier; Start is the bucket's true chronological position and
// is what the output ordering is based on, never the key's string form.
type Bucket struct {
	Key        string    `json:"key"`
	Start      time.Time `json:"start"`
	InflowQty  int64     `json:"inflow_qty"`
	OutflowQty int64     `json:"outflow_qty"`
}

// bucketStart truncates t to the start of its bucket in UTC
func bucketStart(t time.Time, granularity Granularity) time.Time {
	t = t.UTC()
	switch granularity {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// bucketKey formats the calendar identifier for a bucket start
func bucketKey(start time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

// AggregateMovements buckets in-window receipts and stock-outs by the given
// granularity, summing inflow and outflow quantities per bucket. Receipts
// contribute their line quantities as inflow, stock-outs their quantity as
// outflow, keyed into the same bucket when their timestamps share a period.
//
// Events outside the window are excluded. Events with a missing timestamp
// are skipped; a bad record never aborts the batch. Empty input yields an
// empty, valid result.
func AggregateMovements(receipts []*entities.ReceiptEvent, stockOuts []*entities.StockOutEvent, window Window, granularity Granularity) []Bucket {
	buckets := make(map[time.Time]*Bucket)

	bucketFor := func(ts time.Time) *Bucket {
		start := bucketStart(ts, granularity)
		b, ok := buckets[start]
		if !ok {
			b = &Bucket{Key: bucketKey(start, granularity), Start: start}
			buckets[start] = b
		}
		return b
	}

	for _, receipt := range receipts {
		if receipt.ReceivedAt.IsZero() || !window.Contains(receipt.ReceivedAt) {
			continue
		}
		bucketFor(receipt.ReceivedAt).InflowQty += receipt.TotalQuantity()
	}

	for _, out := range stockOuts {
		if out.MovedAt.IsZero() || !window.Contains(out.MovedAt) {
			continue
		}
		bucketFor(out.MovedAt).OutflowQty += out.Quantity
	}

	ordered := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	return ordered
}
