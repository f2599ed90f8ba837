// Package datastore provides bulk snapshot adapters for the calendar's
// event table. A snapshot is a flat list of event rows; adapters serialize
// it to JSON-lines, CSV, iCalendar, or SQLite. Snapshots are export/import
// only and take no part in the calendar's transactional surface.
package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSnapshot is returned by Load when no snapshot has been written yet.
var ErrNoSnapshot = errors.New("datastore: snapshot does not exist")

// EventRecord is one row of the tabular event snapshot.
type EventRecord struct {
	ID    string    `json:"id"`
	Room  string    `json:"room"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Store is the bulk snapshot surface implemented by every adapter.
type Store interface {
	// Save replaces the stored snapshot with the provided records.
	Save(ctx context.Context, records []EventRecord) error
	// Load returns all stored records. It reports ErrNoSnapshot when
	// nothing has been saved yet.
	Load(ctx context.Context) ([]EventRecord, error)
}

// writeFileAtomic writes data to path via a temp file and rename so a
// failed save never truncates an existing snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
