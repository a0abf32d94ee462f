package services

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MetricPoint is one ungrouped (key, metric) observation
type MetricPoint struct {
	Key   string
	Value decimal.Decimal
}

// RankEntry is one ranked group with its summed metric
type RankEntry struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// RankTop sums the metric per distinct key, sorts groups descending by
// summed metric and truncates to the first n. The sort is stable over
// first-seen key order, so equal-metric groups keep their relative order.
// Empty input yields empty output; output length is at most n.
func RankTop(points []MetricPoint, n int) []RankEntry {
	if n <= 0 || len(points) == 0 {
		return nil
	}

	totals := make(map[string]int)
	entries := make([]RankEntry, 0)

	for _, p := range points {
		idx, ok := totals[p.Key]
		if !ok {
			totals[p.Key] = len(entries)
			entries = append(entries, RankEntry{Key: p.Key, Total: p.Value})
			continue
		}
		entries[idx].Total = entries[idx].Total.Add(p.Value)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total.GreaterThan(entries[j].Total)
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
