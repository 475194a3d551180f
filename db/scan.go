// ABOUTME: Column conversion helpers shared by the entity loaders
// ABOUTME: Normalises nullable IDs, numbers, and loosely formatted timestamps
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/pulse/timewindow"
)

func idArg(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func timeArg(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func timePtrArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return timeArg(*t)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// parseID reports false for ids that do not parse. Loaders skip those rows
// rather than letting them share uuid.Nil.
func parseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseIDPtr(s sql.NullString) *uuid.UUID {
	if !s.Valid {
		return nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &id
}

// parseTime returns the zero time for NULL or malformed values so the
// row still loads and the time-window classifier reports it unclassified.
func parseTime(s sql.NullString, loc *time.Location) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := timewindow.ParseDate(s.String, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(s sql.NullString, loc *time.Location) *time.Time {
	t := parseTime(s, loc)
	if t.IsZero() {
		return nil
	}
	return &t
}

// float reads a nullable REAL; NULL is 0.
func float(v sql.NullFloat64) float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}
