// ABOUTME: TUI view for the calendar agenda
// ABOUTME: Lists events with their time-window bucket and per-bucket counts
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/timewindow"
)

var bucketIndicators = map[timewindow.Bucket]string{
	timewindow.Overdue:  "🔴",
	timewindow.Today:    "🟡",
	timewindow.ThisWeek: "🟢",
	timewindow.Upcoming: "⚪",
	timewindow.Past:     "✓",
}

func (m Model) renderAgendaTable() string {
	events := m.events()
	agenda := insights.EventAgenda(m.classifier, events)
	loc := m.classifier.Location()

	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "When", Width: 16},
		{Title: "Title", Width: 28},
		{Title: "Type", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Window", Width: 10},
	}

	var rows []table.Row
	for _, e := range events {
		bucket, ok := agenda.Buckets[e.ID.String()]
		indicator, window, when := "?", "undated", "-"
		if ok {
			indicator, window = bucketIndicators[bucket], string(bucket)
			when = e.StartAt.In(loc).Format("Mon Jan 2 15:04")
		}

		rows = append(rows, table.Row{
			indicator,
			when,
			e.Title,
			e.Type,
			e.Status,
			window,
		})
	}

	return m.newTable(columns, rows)
}

func (m Model) renderAgendaStats() string {
	agenda := insights.EventAgenda(m.classifier, m.events())

	parts := make([]string, 0, len(timewindow.Buckets)+1)
	for _, b := range timewindow.Buckets {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ReplaceAll(string(b), "_", " "), agenda.Counts[b]))
	}
	if n := len(agenda.Unclassified); n > 0 {
		parts = append(parts, fmt.Sprintf("undated %d", n))
	}
	return strings.Join(parts, " • ")
}
