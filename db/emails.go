// ABOUTME: Email and activity database operations
// ABOUTME: Loads correspondence and the interaction log used for engagement metrics
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateEmail(db *sql.DB, email *models.Email) error {
	ensureID(&email.ID)
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now()
	}
	if email.Status == "" {
		email.Status = models.EmailDraft
	}

	_, err := db.Exec(`
		INSERT INTO emails (id, subject, type, status, from_address, to_address, created_at, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, email.ID.String(), email.Subject, email.Type, email.Status, email.FromAddress,
		email.ToAddress, timeArg(email.CreatedAt), timePtrArg(email.SentAt))

	return err
}

func ListEmails(db *sql.DB, loc *time.Location) ([]models.Email, error) {
	rows, err := db.Query(`
		SELECT id, subject, type, status, from_address, to_address, created_at, sent_at
		FROM emails
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []models.Email
	for rows.Next() {
		var (
			e             models.Email
			id            string
			from, to      sql.NullString
			created, sent sql.NullString
		)
		if err := rows.Scan(&id, &e.Subject, &e.Type, &e.Status, &from, &to, &created, &sent); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		e.ID = rowID
		e.FromAddress = from.String
		e.ToAddress = to.String
		e.CreatedAt = parseTime(created, loc)
		e.SentAt = parseTimePtr(sent, loc)
		emails = append(emails, e)
	}

	return emails, rows.Err()
}

func CreateActivity(db *sql.DB, activity *models.Activity) error {
	ensureID(&activity.ID)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO activities (id, type, subject, outcome, contact_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, activity.ID.String(), activity.Type, activity.Subject, activity.Outcome,
		idArg(activity.ContactID), timeArg(activity.CreatedAt))

	return err
}

func ListActivities(db *sql.DB, loc *time.Location) ([]models.Activity, error) {
	rows, err := db.Query(`
		SELECT a.id, a.type, a.subject, a.outcome, a.contact_id, c.name, a.created_at
		FROM activities a
		LEFT JOIN contacts c ON a.contact_id = c.id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var (
			a                      models.Activity
			id                     string
			outcome                sql.NullString
			contactID, contactName sql.NullString
			createdAt              sql.NullString
		)
		if err := rows.Scan(&id, &a.Type, &a.Subject, &outcome, &contactID, &contactName, &createdAt); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		a.ID = rowID
		a.Outcome = outcome.String
		a.ContactID = parseIDPtr(contactID)
		a.ContactName = contactName.String
		a.CreatedAt = parseTime(createdAt, loc)
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
