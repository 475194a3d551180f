// ABOUTME: Batch classification of entity collections into time windows
// ABOUTME: Produces id-to-bucket maps, per-bucket counts, and the unclassified remainder
package timewindow

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Result is the classification of one collection.
type Result struct {
	Reference    time.Time         `json:"reference"`
	Buckets      map[string]Bucket `json:"buckets"`
	Counts       map[Bucket]int    `json:"counts"`
	Unclassified []string          `json:"unclassified,omitempty"`
	// Duplicates lists ids seen again after their first occurrence. Only
	// the first occurrence is classified.
	Duplicates []string `json:"duplicates,omitempty"`
}

// IDs returns the ids classified into b, in input order. Each id is
// listed once even if order repeats it.
func (r Result) IDs(b Bucket, order []string) []string {
	var out []string
	listed := make(map[string]bool)
	for _, id := range order {
		if got, ok := r.Buckets[id]; ok && got == b && !listed[id] {
			listed[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Total returns how many items were classified.
func (r Result) Total() int {
	return len(r.Buckets)
}

// ClassifyAll classifies every item against a single reference instant
// read once from c. Items whose date accessor reports no usable date are
// listed in Unclassified instead. Every distinct id lands in exactly one of
// the two; repeats of an id are skipped and reported in Duplicates, so
// Counts always sum to len(Buckets).
func ClassifyAll[T any](c *Classifier, items []T, id func(T) string, date func(T) (time.Time, bool), resolved func(T) bool) Result {
	ref := c.Reference()
	res := Result{
		Reference: ref,
		Buckets:   make(map[string]Bucket, len(items)),
		Counts:    make(map[Bucket]int, len(Buckets)),
	}
	for _, b := range Buckets {
		res.Counts[b] = 0
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := id(item)
		if _, dup := seen[key]; dup {
			res.Duplicates = append(res.Duplicates, key)
			continue
		}
		seen[key] = struct{}{}

		d, ok := date(item)
		if !ok || d.IsZero() {
			res.Unclassified = append(res.Unclassified, key)
			continue
		}
		isResolved := resolved != nil && resolved(item)
		b := classify(ref, d, isResolved, c.loc, c.windowDays)
		res.Buckets[key] = b
		res.Counts[b]++
	}
	return res
}

// ErrMalformedDate is returned by ParseDate for text no layout accepts.
var ErrMalformedDate = errors.New("malformed date")

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses the timestamp formats the SQLite store and JSON feeds
// produce. Zone-less values are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrMalformedDate)
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}
