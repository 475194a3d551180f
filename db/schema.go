// ABOUTME: Database schema definitions
// ABOUTME: Creates the SQLite tables the dashboard reads entity snapshots from
package db

import (
	"database/sql"
)

// Timestamps are TEXT so rows written by other tools keep their original
// formatting; loaders parse them leniently.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	industry TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	company_id TEXT,
	status TEXT NOT NULL DEFAULT 'active',
	last_contacted_at TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL,
	estimated_value REAL,
	score REAL,
	converted_to_opportunity INTEGER NOT NULL DEFAULT 0,
	contact_id TEXT,
	company_id TEXT,
	due_date TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id),
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	value REAL,
	probability REAL,
	stage TEXT NOT NULL,
	contact_id TEXT,
	company_id TEXT,
	expected_close_date TEXT,
	created_at TEXT NOT NULL,
	last_activity_at TEXT,
	FOREIGN KEY (contact_id) REFERENCES contacts(id),
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_opportunities_stage ON opportunities(stage);

CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL,
	budget REAL,
	actual_cost REAL,
	progress REAL,
	company_id TEXT,
	start_date TEXT,
	end_date TEXT,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE TABLE IF NOT EXISTS calendar_events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	location TEXT,
	start_at TEXT,
	end_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_calendar_events_start ON calendar_events(start_at);

CREATE TABLE IF NOT EXISTS emails (
	id TEXT PRIMARY KEY,
	subject TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	from_address TEXT,
	to_address TEXT,
	created_at TEXT NOT NULL,
	sent_at TEXT
);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	subject TEXT NOT NULL,
	outcome TEXT,
	contact_id TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_created ON activities(created_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
