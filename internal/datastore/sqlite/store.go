// Package sqlite implements the snapshot store on an embedded SQLite
// database. Each save replaces the events table inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/room-calendar/internal/datastore"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	room       TEXT NOT NULL,
	name       TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_room_start ON events (room, start_time);
`

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at dsn and ensures the
// snapshot schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored snapshot with the provided records in a single
// transaction; a failed save leaves the previous snapshot intact.
func (s *Store) Save(ctx context.Context, records []datastore.EventRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	if err := s.saveInTx(ctx, tx, records); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: save failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (s *Store) saveInTx(ctx context.Context, tx *sql.Tx, records []datastore.EventRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("sqlite: clear events: %w", err)
	}

	const insert = `
		INSERT INTO events (id, room, name, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, record := range records {
		_, err := tx.ExecContext(ctx, insert,
			record.ID,
			record.Room,
			record.Name,
			record.Start.Format(time.RFC3339),
			record.End.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("sqlite: insert event %q: %w", record.ID, err)
		}
	}
	return nil
}

// Load returns all stored records ordered by room and start time.
func (s *Store) Load(ctx context.Context) ([]datastore.EventRecord, error) {
	const query = `
		SELECT id, room, name, start_time, end_time
		FROM events
		ORDER BY room, start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query events: %w", err)
	}
	defer rows.Close()

	var records []datastore.EventRecord
	for rows.Next() {
		var record datastore.EventRecord
		var startStr, endStr string
		if err := rows.Scan(&record.ID, &record.Room, &record.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("sqlite: scan event: %w", err)
		}
		if record.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
			return nil, fmt.Errorf("sqlite: event %q start: %w", record.ID, err)
		}
		if record.End, err = time.Parse(time.RFC3339, endStr); err != nil {
			return nil, fmt.Errorf("sqlite: event %q end: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
