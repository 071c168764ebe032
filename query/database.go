package query

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const TableUsage = "usage"

// Database is the in-memory store of a single run. Nothing is written to disk.
type Database struct {
	*sqlx.DB
}

func NewDatabase(db *sqlx.DB) *Database {
	return &Database{DB: db}
}

// OpenRunDatabase creates a fresh in-memory database with the usage schema.
func OpenRunDatabase() (*Database, error) {
	dbTemp, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("OpenRunDatabase: %w", err)
	}
	// every connection to :memory: is a different database
	dbTemp.SetMaxOpenConns(1)

	db := NewDatabase(dbTemp)
	if err := db.createSchema(); err != nil {
		dbTemp.Close()
		return nil, err
	}
	return db, nil
}

func (db *Database) createSchema() error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		app TEXT NOT NULL,
		category INTEGER NOT NULL,
		start_time INTEGER NOT NULL,
		duration_hours REAL NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("createSchema: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_usage_category ON usage(category)`)
	if err != nil {
		return fmt.Errorf("createSchema: %w", err)
	}
	return nil
}
