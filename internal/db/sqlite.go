// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/ponto/internal/punch"
)

const dateLayout = "2006-01-02"

// SQLite implements punch.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ punch.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadDraft returns the draft for day.
// A draft stored for a different day is deleted and an empty draft is returned.
func (s *SQLite) LoadDraft(ctx context.Context, day time.Time) (*punch.Draft, error) {
	var (
		date                                   string
		morningIn, lunchOut, lunchIn, afterOut string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT day, morning_in, lunch_out, lunch_in, afternoon_out
		FROM draft WHERE id = 1
	`).Scan(&date, &morningIn, &lunchOut, &lunchIn, &afterOut)
	if errors.Is(err, sql.ErrNoRows) {
		return punch.NewDraft(day), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	if date != day.Format(dateLayout) {
		if err := s.ClearDraft(ctx); err != nil {
			return nil, err
		}
		return punch.NewDraft(day), nil
	}

	d := punch.NewDraft(day)
	d.MorningIn = morningIn
	d.LunchOut = lunchOut
	d.LunchIn = lunchIn
	d.AfternoonOut = afterOut
	return d, nil
}

// SaveDraft replaces the stored draft.
func (s *SQLite) SaveDraft(ctx context.Context, d *punch.Draft) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO draft (id, day, morning_in, lunch_out, lunch_in, afternoon_out, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			morning_in = excluded.morning_in,
			lunch_out = excluded.lunch_out,
			lunch_in = excluded.lunch_in,
			afternoon_out = excluded.afternoon_out,
			updated_at = excluded.updated_at
	`,
		d.Date.Format(dateLayout),
		d.MorningIn,
		d.LunchOut,
		d.LunchIn,
		d.AfternoonOut,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// ClearDraft removes the stored draft.
func (s *SQLite) ClearDraft(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM draft`); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
