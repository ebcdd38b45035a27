package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS draft (
			id            INTEGER PRIMARY KEY CHECK(id = 1),
			day           TEXT NOT NULL,
			morning_in    TEXT NOT NULL DEFAULT '',
			lunch_out     TEXT NOT NULL DEFAULT '',
			lunch_in      TEXT NOT NULL DEFAULT '',
			afternoon_out TEXT NOT NULL DEFAULT '',
			updated_at    TEXT NOT NULL DEFAULT ''
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating draft table: %w", err)
	}

	return nil
}
