// ABOUTME: Filter predicate builder for entity lists
// ABOUTME: Combines free-text search, categorical selections, and numeric ranges with AND
package filter

import (
	"strings"

	"github.com/harperreed/pulse/models"
)

// All is the selection value meaning "no restriction" for a category.
const All = "all"

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// Criteria is the user's current filter input.
type Criteria struct {
	Query      string             `json:"query,omitempty"`
	Selections map[string]string  `json:"selections,omitempty"`
	Min        map[string]float64 `json:"min,omitempty"`
	Max        map[string]float64 `json:"max,omitempty"`
}

// Fields describes which parts of T take part in filtering.
type Fields[T any] struct {
	// Text accessors searched by the free-text query.
	Text []func(T) string
	// Categories maps a selection name (e.g. "status") to its accessor.
	Categories map[string]func(T) string
	// Numbers maps a range name (e.g. "value") to its accessor.
	Numbers map[string]func(T) float64
}

// Select returns a copy of c with one more categorical selection.
func (c Criteria) Select(name, value string) Criteria {
	out := c.clone()
	out.Selections[name] = value
	return out
}

// Range returns a copy of c bounded on name. A nil bound is left open.
func (c Criteria) Range(name string, lo, hi *float64) Criteria {
	out := c.clone()
	if lo != nil {
		out.Min[name] = *lo
	}
	if hi != nil {
		out.Max[name] = *hi
	}
	return out
}

func (c Criteria) clone() Criteria {
	out := Criteria{
		Query:      c.Query,
		Selections: make(map[string]string, len(c.Selections)),
		Min:        make(map[string]float64, len(c.Min)),
		Max:        make(map[string]float64, len(c.Max)),
	}
	for k, v := range c.Selections {
		out.Selections[k] = v
	}
	for k, v := range c.Min {
		out.Min[k] = v
	}
	for k, v := range c.Max {
		out.Max[k] = v
	}
	return out
}

type category[T any] struct {
	get  func(T) string
	want string
}

type bound[T any] struct {
	get      func(T) float64
	min, max float64
	hasMin   bool
	hasMax   bool
}

// Build compiles criteria into a predicate. The predicate captures its own
// copy of the criteria, so later changes to c do not affect it.
//
// Selections equal to All or empty impose no restriction, as do selections
// and ranges whose name has no accessor in fields.
func Build[T any](c Criteria, fields Fields[T]) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(c.Query))
	text := append([]func(T) string(nil), fields.Text...)

	var cats []category[T]
	for name, want := range c.Selections {
		if want == "" || want == All {
			continue
		}
		get, ok := fields.Categories[name]
		if !ok {
			continue
		}
		cats = append(cats, category[T]{get: get, want: want})
	}

	bounds := make(map[string]*bound[T])
	addBound := func(name string) *bound[T] {
		if b, ok := bounds[name]; ok {
			return b
		}
		get, ok := fields.Numbers[name]
		if !ok {
			return nil
		}
		b := &bound[T]{get: get}
		bounds[name] = b
		return b
	}
	for name, v := range c.Min {
		if b := addBound(name); b != nil {
			b.min, b.hasMin = v, true
		}
	}
	for name, v := range c.Max {
		if b := addBound(name); b != nil {
			b.max, b.hasMax = v, true
		}
	}
	ranges := make([]bound[T], 0, len(bounds))
	for _, b := range bounds {
		ranges = append(ranges, *b)
	}

	return func(item T) bool {
		if needle != "" && !matchesText(item, text, needle) {
			return false
		}
		for _, cat := range cats {
			if cat.get(item) != cat.want {
				return false
			}
		}
		for _, r := range ranges {
			v := models.Finite(r.get(item))
			if r.hasMin && v < r.min {
				return false
			}
			if r.hasMax && v > r.max {
				return false
			}
		}
		return true
	}
}

func matchesText[T any](item T, text []func(T) string, needle string) bool {
	for _, get := range text {
		if strings.Contains(strings.ToLower(get(item)), needle) {
			return true
		}
	}
	return false
}

// Apply returns the items that pass pred, in their original order. The
// result is a new slice; items is not modified.
func Apply[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Filter is Build followed by Apply.
func Filter[T any](items []T, c Criteria, fields Fields[T]) []T {
	return Apply(items, Build(c, fields))
}
