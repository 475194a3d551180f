// ABOUTME: Loads a full dataset snapshot for the insights engine
// ABOUTME: Reads every entity table and wraps failures with the table that broke
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/pulse/models"
)

// LoadDataset reads every collection. Dates are interpreted in loc when
// they carry no zone of their own.
func LoadDataset(db *sql.DB, loc *time.Location) (models.Dataset, error) {
	if loc == nil {
		loc = time.Local
	}

	var (
		data models.Dataset
		err  error
	)

	if data.Companies, err = ListCompanies(db, loc); err != nil {
		return data, fmt.Errorf("failed to load companies: %w", err)
	}
	if data.Contacts, err = ListContacts(db, loc); err != nil {
		return data, fmt.Errorf("failed to load contacts: %w", err)
	}
	if data.Leads, err = ListLeads(db, loc); err != nil {
		return data, fmt.Errorf("failed to load leads: %w", err)
	}
	if data.Opportunities, err = ListOpportunities(db, loc); err != nil {
		return data, fmt.Errorf("failed to load opportunities: %w", err)
	}
	if data.Projects, err = ListProjects(db, loc); err != nil {
		return data, fmt.Errorf("failed to load projects: %w", err)
	}
	if data.Events, err = ListEvents(db, loc); err != nil {
		return data, fmt.Errorf("failed to load calendar events: %w", err)
	}
	if data.Emails, err = ListEmails(db, loc); err != nil {
		return data, fmt.Errorf("failed to load emails: %w", err)
	}
	if data.Activities, err = ListActivities(db, loc); err != nil {
		return data, fmt.Errorf("failed to load activities: %w", err)
	}

	return data, nil
}
