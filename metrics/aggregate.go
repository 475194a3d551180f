// ABOUTME: Aggregation engine for dashboard statistics
// ABOUTME: Sums, averages, rates, percentages, and stage groupings over any entity slice
package metrics

import (
	"math"
	"sort"

	"github.com/harperreed/pulse/models"
)

// Group is one bucket of a categorical breakdown.
type Group struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
	// Share is Total as a percentage of the grand total across all groups.
	Share float64 `json:"share"`
}

// Total sums value over items. Non-finite values count as 0.
func Total[T any](items []T, value func(T) float64) float64 {
	var sum float64
	for _, item := range items {
		sum += models.Finite(value(item))
	}
	return models.Finite(sum)
}

// Average returns the mean of value over items, 0 for an empty slice.
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Total(items, value) / float64(len(items))
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Rate returns the percentage of items satisfying pred, 0 for an empty slice.
func Rate[T any](items []T, pred func(T) bool) float64 {
	return Percent(float64(Count(items, pred)), float64(len(items)))
}

// Percent expresses part as a percentage of whole, clamped to [0, 100].
// A zero or non-finite whole yields 0.
func Percent(part, whole float64) float64 {
	part = models.Finite(part)
	whole = models.Finite(whole)
	if whole == 0 {
		return 0
	}
	return models.ClampPercent(part / whole * 100)
}

// WeightedValue sums value*probability/100 over items. Probabilities are
// clamped to [0, 100] first.
func WeightedValue[T any](items []T, value, probability func(T) float64) float64 {
	var sum float64
	for _, item := range items {
		sum += models.Finite(value(item)) * models.ClampPercent(probability(item)) / 100
	}
	return models.Finite(sum)
}

// Max returns the largest value, 0 for an empty slice.
func Max[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	best := math.Inf(-1)
	for _, item := range items {
		if v := models.Finite(value(item)); v > best {
			best = v
		}
	}
	return best
}

// Min returns the smallest value, 0 for an empty slice.
func Min[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	best := math.Inf(1)
	for _, item := range items {
		if v := models.Finite(value(item)); v < best {
			best = v
		}
	}
	return best
}

// GroupBy buckets items by key and sums value per bucket.
//
// When order is non-empty it is treated as a closed set: every key in order
// gets a group (possibly empty), in that order, and any other key is folded
// into a trailing models.Unknown group that only appears when it has
// members. When order is empty the groups are sorted by key and only the
// empty key is mapped to models.Unknown.
//
// value may be nil to count without summing.
func GroupBy[T any](items []T, key func(T) string, value func(T) float64, order []string) []Group {
	closed := len(order) > 0
	index := make(map[string]int)
	var groups []Group

	if closed {
		groups = make([]Group, 0, len(order)+1)
		for _, k := range order {
			if _, dup := index[k]; dup {
				continue
			}
			index[k] = len(groups)
			groups = append(groups, Group{Key: k})
		}
	}

	var grand float64
	for _, item := range items {
		k := key(item)
		if _, ok := index[k]; !ok && (closed || k == "") {
			k = models.Unknown
		}

		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}

		var v float64
		if value != nil {
			v = models.Finite(value(item))
		}
		groups[i].Count++
		groups[i].Total += v
		grand += v
	}

	if !closed {
		sort.Slice(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	}

	// Overflowing sums collapse to 0, matching Total.
	grand = models.Finite(grand)
	for i := range groups {
		groups[i].Total = models.Finite(groups[i].Total)
		groups[i].Share = Percent(groups[i].Total, grand)
	}
	return groups
}

// CountShares fills Share from Count rather than Total, for breakdowns
// where every item weighs the same.
func CountShares(groups []Group) []Group {
	out := make([]Group, len(groups))
	var n int
	for _, g := range groups {
		n += g.Count
	}
	for i, g := range groups {
		g.Share = Percent(float64(g.Count), float64(n))
		out[i] = g
	}
	return out
}

// Lookup returns the group with the given key, or a zero group.
func Lookup(groups []Group, key string) Group {
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	return Group{Key: key}
}

// SumGroups adds up the totals of every group. An overflowing sum is 0.
func SumGroups(groups []Group) float64 {
	var sum float64
	for _, g := range groups {
		sum += g.Total
	}
	return models.Finite(sum)
}
