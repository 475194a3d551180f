// ABOUTME: Tests for dataset loading, boundary normalisation, and seeding
// ABOUTME: Exercises raw rows with NULL numbers and malformed dates against in-memory SQLite
package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, InitSchema(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestLoadDatasetEmpty(t *testing.T) {
	db := setupTestDB(t)

	data, err := LoadDataset(db, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, data.Contacts)
	assert.Empty(t, data.Leads)
	assert.Empty(t, data.Opportunities)
	assert.Empty(t, data.Events)
}

func TestLoadDatasetNullNumbersReadAsZero(t *testing.T) {
	db := setupTestDB(t)

	id := uuid.New()
	_, err := db.Exec(`
		INSERT INTO leads (id, title, status, estimated_value, score, created_at)
		VALUES (?, 'No numbers', 'new', NULL, NULL, '2026-03-01')
	`, id.String())
	require.NoError(t, err)

	oppID := uuid.New()
	_, err = db.Exec(`
		INSERT INTO opportunities (id, name, stage, value, probability, created_at)
		VALUES (?, 'Overconfident', 'proposal', NULL, 150, '2026-03-01')
	`, oppID.String())
	require.NoError(t, err)

	data, err := LoadDataset(db, time.UTC)
	require.NoError(t, err)

	require.Len(t, data.Leads, 1)
	assert.Equal(t, id, data.Leads[0].ID)
	assert.Zero(t, data.Leads[0].EstimatedValue)
	assert.Zero(t, data.Leads[0].Score)

	require.Len(t, data.Opportunities, 1)
	assert.Zero(t, data.Opportunities[0].Value)
	assert.Equal(t, 100.0, data.Opportunities[0].Probability)
}

func TestLoadDatasetSkipsRowsWithInvalidIDs(t *testing.T) {
	db := setupTestDB(t)

	good := uuid.New()
	_, err := db.Exec(`
		INSERT INTO leads (id, title, status, due_date, created_at) VALUES
			(?, 'Kept', 'new', '2026-03-11', '2026-03-01'),
			('not-a-uuid', 'Garbled one', 'new', '2026-03-11', '2026-03-01'),
			('also-garbled', 'Garbled two', 'new', '2026-04-30', '2026-03-01'),
			('00000000-0000-0000-0000-000000000000', 'Nil id', 'new', '2026-03-11', '2026-03-01')
	`, good.String())
	require.NoError(t, err)

	data, err := LoadDataset(db, time.UTC)
	require.NoError(t, err)
	require.Len(t, data.Leads, 1)
	assert.Equal(t, good, data.Leads[0].ID)

	c := timewindow.New(timewindow.WithReference(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)), timewindow.WithLocation(time.UTC))
	agenda := insights.LeadAgenda(c, data.Leads)
	assert.Len(t, agenda.Buckets, 1)
	assert.Equal(t, 1, agenda.Counts[timewindow.Today])
}

func TestLoadDatasetMalformedDateIsUnclassified(t *testing.T) {
	db := setupTestDB(t)
	loc := chicago(t)

	good := uuid.New()
	bad := uuid.New()
	_, err := db.Exec(`
		INSERT INTO calendar_events (id, title, type, status, start_at) VALUES
			(?, 'Standup', 'meeting', 'scheduled', '2026-03-11 09:00:00'),
			(?, 'Broken', 'call', 'scheduled', 'next tuesday-ish')
	`, good.String(), bad.String())
	require.NoError(t, err)

	data, err := LoadDataset(db, loc)
	require.NoError(t, err)
	require.Len(t, data.Events, 2)

	ref := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)
	c := timewindow.New(timewindow.WithReference(ref), timewindow.WithLocation(loc))
	agenda := insights.EventAgenda(c, data.Events)

	assert.Equal(t, []string{bad.String()}, agenda.Unclassified)
	assert.Equal(t, 1, agenda.Counts[timewindow.Today])
	assert.Equal(t, timewindow.Today, agenda.Buckets[good.String()])
}

func TestLoadDatasetZonelessDatesUseLocation(t *testing.T) {
	db := setupTestDB(t)
	loc := chicago(t)

	_, err := db.Exec(`
		INSERT INTO leads (id, title, status, due_date, created_at)
		VALUES (?, 'Due soon', 'new', '2026-03-12', '2026-03-01T08:30:00Z')
	`, uuid.New().String())
	require.NoError(t, err)

	data, err := LoadDataset(db, loc)
	require.NoError(t, err)
	require.Len(t, data.Leads, 1)

	due := data.Leads[0].DueDate
	require.NotNil(t, due)
	assert.Equal(t, loc, due.Location())
	assert.Equal(t, 0, due.Hour())
	assert.True(t, data.Leads[0].CreatedAt.Equal(time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)))
}

func TestLoadDatasetResolvesNames(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Acme Corp", Industry: "Manufacturing"}
	require.NoError(t, CreateCompany(db, company))
	contact := &models.Contact{Name: "Alice", CompanyID: &company.ID}
	require.NoError(t, CreateContact(db, contact))
	lead := &models.Lead{Title: "Rollout", ContactID: &contact.ID, CompanyID: &company.ID, EstimatedValue: 1000}
	require.NoError(t, CreateLead(db, lead))

	assert.NotEqual(t, uuid.Nil, lead.ID)
	assert.Equal(t, models.LeadNew, lead.Status)

	data, err := LoadDataset(db, time.UTC)
	require.NoError(t, err)

	require.Len(t, data.Contacts, 1)
	assert.Equal(t, "Acme Corp", data.Contacts[0].CompanyName)
	assert.Equal(t, models.ContactActive, data.Contacts[0].Status)

	require.Len(t, data.Leads, 1)
	assert.Equal(t, "Alice", data.Leads[0].ContactName)
	assert.Equal(t, "Acme Corp", data.Leads[0].CompanyName)
	assert.Equal(t, 1000.0, data.Leads[0].EstimatedValue)
}

func TestFindCompanyByName(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, CreateCompany(db, &models.Company{Name: "Globex"}))

	found, err := FindCompanyByName(db, "globex", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Globex", found.Name)

	missing, err := FindCompanyByName(db, "Initech", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSeedCoversEveryBucket(t *testing.T) {
	db := setupTestDB(t)
	loc := chicago(t)
	ref := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)

	counts, err := Seed(db, ref)
	require.NoError(t, err)
	assert.Equal(t, 6, counts.Leads)
	assert.Equal(t, 5, counts.Opportunities)

	data, err := LoadDataset(db, loc)
	require.NoError(t, err)
	assert.Len(t, data.Companies, counts.Companies)
	assert.Len(t, data.Contacts, counts.Contacts)
	assert.Len(t, data.Projects, counts.Projects)
	assert.Len(t, data.Events, counts.Events)
	assert.Len(t, data.Emails, counts.Emails)
	assert.Len(t, data.Activities, counts.Activities)

	c := timewindow.New(timewindow.WithReference(ref), timewindow.WithLocation(loc))
	agenda := insights.LeadAgenda(c, data.Leads)
	for _, b := range timewindow.Buckets {
		assert.Equal(t, 1, agenda.Counts[b], "bucket %s", b)
	}
	assert.Len(t, agenda.Unclassified, 1)
}
