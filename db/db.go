// ABOUTME: Database connection management and initialization
// ABOUTME: Opens the SQLite store with WAL and foreign keys, then applies the schema
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dsnOptions are appended to every on-disk path. Foreign keys keep lead,
// opportunity, and activity references pointing at real rows.
const dsnOptions = "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

// OpenDatabase opens (creating if needed) the pulse database at path.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite serialises writers anyway, and the pragmas
	// above are per connection.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
