// ABOUTME: Calendar and follow-up agenda built on the time-window classifier
// ABOUTME: Classifies events and lead due dates and counts them per bucket
package insights

import (
	"time"

	"github.com/harperreed/pulse/metrics"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

type Agenda struct {
	Reference    time.Time                      `json:"reference"`
	Counts       map[timewindow.Bucket]int      `json:"counts"`
	IDs          map[timewindow.Bucket][]string `json:"ids"`
	Buckets      map[string]timewindow.Bucket   `json:"buckets"`
	Unclassified []string                       `json:"unclassified,omitempty"`
	Duplicates   []string                       `json:"duplicates,omitempty"`
}

func newAgenda(res timewindow.Result, order []string) Agenda {
	a := Agenda{
		Reference:    res.Reference,
		Counts:       res.Counts,
		IDs:          make(map[timewindow.Bucket][]string, len(timewindow.Buckets)),
		Buckets:      res.Buckets,
		Unclassified: res.Unclassified,
		Duplicates:   res.Duplicates,
	}
	for _, b := range timewindow.Buckets {
		a.IDs[b] = res.IDs(b, order)
	}
	return a
}

// EventAgenda classifies events by start time. Completed and cancelled
// events in the past are Past rather than Overdue.
func EventAgenda(c *timewindow.Classifier, events []models.CalendarEvent) Agenda {
	order := make([]string, len(events))
	for i, e := range events {
		order[i] = e.ID.String()
	}
	res := timewindow.ClassifyAll(c, events,
		func(e models.CalendarEvent) string { return e.ID.String() },
		func(e models.CalendarEvent) (time.Time, bool) { return e.StartAt, !e.StartAt.IsZero() },
		models.CalendarEvent.Resolved,
	)
	return newAgenda(res, order)
}

// LeadAgenda classifies leads by due date. Leads without one are
// unclassified.
func LeadAgenda(c *timewindow.Classifier, leads []models.Lead) Agenda {
	order := make([]string, len(leads))
	for i, l := range leads {
		order[i] = l.ID.String()
	}
	res := timewindow.ClassifyAll(c, leads,
		func(l models.Lead) string { return l.ID.String() },
		func(l models.Lead) (time.Time, bool) {
			if l.DueDate == nil {
				return time.Time{}, false
			}
			return *l.DueDate, true
		},
		models.Lead.Resolved,
	)
	return newAgenda(res, order)
}

type EventSummary struct {
	Count          int             `json:"count"`
	CompletionRate float64         `json:"completion_rate"`
	ByType         []metrics.Group `json:"by_type"`
	ByStatus       []metrics.Group `json:"by_status"`
	Agenda         Agenda          `json:"agenda"`
}

func SummarizeEvents(c *timewindow.Classifier, events []models.CalendarEvent) EventSummary {
	return EventSummary{
		Count:          len(events),
		CompletionRate: metrics.Rate(events, func(e models.CalendarEvent) bool { return e.Status == models.EventCompleted }),
		ByType:         metrics.CountShares(metrics.GroupBy(events, func(e models.CalendarEvent) string { return e.Type }, nil, models.EventTypes)),
		ByStatus:       metrics.CountShares(metrics.GroupBy(events, func(e models.CalendarEvent) string { return e.Status }, nil, models.EventStatuses)),
		Agenda:         EventAgenda(c, events),
	}
}
