package query

import (
	"fmt"

	"screentime/entity"
)

// SaveUsageBatch inserts all entries in one transaction.
func (db *Database) SaveUsageBatch(entries []entity.UsageEntry) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("SaveUsageBatch: %w", err)
	}
	stmt, err := tx.Preparex(`INSERT INTO usage (app, category, start_time, duration_hours) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("SaveUsageBatch: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.App, int(e.Category), e.StartTime.UnixNano(), e.DurationHours); err != nil {
			tx.Rollback()
			return fmt.Errorf("SaveUsageBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveUsageBatch: commit: %w", err)
	}
	return nil
}
