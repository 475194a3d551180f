// ABOUTME: Contact database operations
// ABOUTME: Handles contact inserts and listing with company names resolved
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	ensureID(&contact.ID)
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	if contact.Status == "" {
		contact.Status = models.ContactActive
	}

	_, err := db.Exec(`
		INSERT INTO contacts (id, name, email, company_id, status, last_contacted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Email, idArg(contact.CompanyID), contact.Status,
		timePtrArg(contact.LastContactedAt), timeArg(contact.CreatedAt))

	return err
}

func ListContacts(db *sql.DB, loc *time.Location) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, c.email, c.company_id, co.name, c.status, c.last_contacted_at, c.created_at
		FROM contacts c
		LEFT JOIN companies co ON c.company_id = co.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var (
			c                             models.Contact
			id                            string
			email, companyID, companyName sql.NullString
			lastContactedAt, createdAt    sql.NullString
		)
		if err := rows.Scan(&id, &c.Name, &email, &companyID, &companyName, &c.Status, &lastContactedAt, &createdAt); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		c.ID = rowID
		c.Email = email.String
		c.CompanyID = parseIDPtr(companyID)
		c.CompanyName = companyName.String
		c.LastContactedAt = parseTimePtr(lastContactedAt, loc)
		c.CreatedAt = parseTime(createdAt, loc)
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}
