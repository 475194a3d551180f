// ABOUTME: Time-window classifier for dated CRM entities
// ABOUTME: Buckets dates into today, overdue, this_week, upcoming, or past relative to a reference instant
package timewindow

import (
	"time"
)

// Bucket is the label a dated entity is classified into.
type Bucket string

const (
	Today    Bucket = "today"
	Overdue  Bucket = "overdue"
	ThisWeek Bucket = "this_week"
	Upcoming Bucket = "upcoming"
	Past     Bucket = "past"
)

// Buckets lists every bucket in agenda display order.
var Buckets = []Bucket{Overdue, Today, ThisWeek, Upcoming, Past}

// DefaultWindowDays is the length of the rolling "this week" window.
const DefaultWindowDays = 7

// Classifier holds the reference clock and calendar used for bucketing.
// A Classifier is immutable once built and safe for concurrent use.
type Classifier struct {
	now        func() time.Time
	loc        *time.Location
	windowDays int
}

type Option func(*Classifier)

// WithClock injects the source of the reference instant.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithReference pins the reference instant.
func WithReference(ref time.Time) Option {
	return WithClock(func() time.Time { return ref })
}

// WithLocation sets the calendar used to compare dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithWindowDays sets the length of the this_week window. Values below 1
// are ignored.
func WithWindowDays(days int) Option {
	return func(c *Classifier) {
		if days >= 1 {
			c.windowDays = days
		}
	}
}

func New(opts ...Option) *Classifier {
	c := &Classifier{
		now:        time.Now,
		loc:        time.Local,
		windowDays: DefaultWindowDays,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reference returns the current reference instant in the classifier's
// location.
func (c *Classifier) Reference() time.Time {
	return c.now().In(c.loc)
}

// Pinned returns a classifier with the same calendar and window whose
// reference is frozen at c's current instant. Callers that classify
// several collections use it so every result shares one reference.
func (c *Classifier) Pinned() *Classifier {
	ref := c.Reference()
	return &Classifier{
		now:        func() time.Time { return ref },
		loc:        c.loc,
		windowDays: c.windowDays,
	}
}

func (c *Classifier) Location() *time.Location {
	return c.loc
}

func (c *Classifier) WindowDays() int {
	return c.windowDays
}

// Classify buckets date against the classifier's current reference.
func (c *Classifier) Classify(date time.Time, resolved bool) Bucket {
	return classify(c.Reference(), date, resolved, c.loc, c.windowDays)
}

// Classify buckets date relative to ref using ref's location and the
// default window:
//
//   - same calendar day as ref: Today
//   - an earlier day: Overdue when unresolved, Past otherwise
//   - 1 to 7 calendar days after ref: ThisWeek
//   - later: Upcoming
func Classify(ref, date time.Time, resolved bool) Bucket {
	return classify(ref, date, resolved, ref.Location(), DefaultWindowDays)
}

func classify(ref, date time.Time, resolved bool, loc *time.Location, window int) Bucket {
	days := CalendarDaysBetween(ref, date, loc)
	switch {
	case days == 0:
		return Today
	case days < 0:
		if resolved {
			return Past
		}
		return Overdue
	case days <= window:
		return ThisWeek
	default:
		return Upcoming
	}
}

// CalendarDaysBetween returns the number of calendar days from a to b as
// seen in loc. Times of day are ignored, so 00:01 and 23:59 on the same
// date are 0 days apart. DST transitions do not skew the count.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysSince returns whole days elapsed from t to ref, matching the
// dashboard's staleness arithmetic. Future times yield negative values.
func DaysSince(ref, t time.Time) int {
	return int(ref.Sub(t).Hours() / 24)
}

// Within reports whether t falls in the last days days up to and
// including ref.
func Within(ref, t time.Time, days int) bool {
	if t.After(ref) {
		return false
	}
	return ref.Sub(t) <= time.Duration(days)*24*time.Hour
}
