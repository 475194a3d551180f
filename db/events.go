// ABOUTME: Calendar event database operations
// ABOUTME: Stores and loads scheduled meetings, calls, demos, and deadlines
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateEvent(db *sql.DB, event *models.CalendarEvent) error {
	ensureID(&event.ID)
	if event.Status == "" {
		event.Status = models.EventScheduled
	}

	_, err := db.Exec(`
		INSERT INTO calendar_events (id, title, description, type, status, location, start_at, end_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID.String(), event.Title, event.Description, event.Type, event.Status,
		event.Location, timeArg(event.StartAt), timeArg(event.EndAt))

	return err
}

func ListEvents(db *sql.DB, loc *time.Location) ([]models.CalendarEvent, error) {
	rows, err := db.Query(`
		SELECT id, title, description, type, status, location, start_at, end_at
		FROM calendar_events
		ORDER BY start_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var (
			e                     models.CalendarEvent
			id                    string
			description, location sql.NullString
			startAt, endAt        sql.NullString
		)
		if err := rows.Scan(&id, &e.Title, &description, &e.Type, &e.Status, &location, &startAt, &endAt); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		e.ID = rowID
		e.Description = description.String
		e.Location = location.String
		e.StartAt = parseTime(startAt, loc)
		e.EndAt = parseTime(endAt, loc)
		events = append(events, e)
	}

	return events, rows.Err()
}
