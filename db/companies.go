// ABOUTME: Company database operations
// ABOUTME: Handles company inserts, listing, and name lookups
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateCompany(db *sql.DB, company *models.Company) error {
	ensureID(&company.ID)
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO companies (id, name, industry, created_at)
		VALUES (?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.Industry, timeArg(company.CreatedAt))

	return err
}

func ListCompanies(db *sql.DB, loc *time.Location) ([]models.Company, error) {
	rows, err := db.Query(`
		SELECT id, name, industry, created_at
		FROM companies
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var (
			c                   models.Company
			id                  string
			industry, createdAt sql.NullString
		)
		if err := rows.Scan(&id, &c.Name, &industry, &createdAt); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		c.ID = rowID
		c.Industry = industry.String
		c.CreatedAt = parseTime(createdAt, loc)
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// FindCompanyByName returns nil when no company matches (case-insensitive).
func FindCompanyByName(db *sql.DB, name string, loc *time.Location) (*models.Company, error) {
	var (
		c                   models.Company
		id                  string
		industry, createdAt sql.NullString
	)
	err := db.QueryRow(`
		SELECT id, name, industry, created_at
		FROM companies WHERE LOWER(name) = ?
	`, strings.ToLower(name)).Scan(&id, &c.Name, &industry, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rowID, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("company %q has an invalid id %q", c.Name, id)
	}
	c.ID = rowID
	c.Industry = industry.String
	c.CreatedAt = parseTime(createdAt, loc)
	return &c, nil
}
