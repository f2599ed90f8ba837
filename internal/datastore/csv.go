package datastore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var csvHeader = []string{"id", "room", "name", "start", "end"}

// CSVStore persists snapshots as CSV with a header row.
type CSVStore struct {
	Path string
}

// NewCSVStore returns a CSV snapshot store writing to path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

// Save writes the header followed by one row per record. Timestamps are
// formatted as RFC 3339.
func (s *CSVStore) Save(ctx context.Context, records []EventRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range records {
		row := []string{
			record.ID,
			record.Room,
			record.Name,
			record.Start.Format(time.RFC3339),
			record.End.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("datastore: write event %q: %w", record.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return writeFileAtomic(s.Path, buf.Bytes())
}

// Load reads all rows, skipping the header.
func (s *CSVStore) Load(ctx context.Context) ([]EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(csvHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []EventRecord
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		start, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return nil, fmt.Errorf("datastore: row %d start: %w", i+1, err)
		}
		end, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			return nil, fmt.Errorf("datastore: row %d end: %w", i+1, err)
		}
		records = append(records, EventRecord{
			ID:    row[0],
			Room:  row[1],
			Name:  row[2],
			Start: start,
			End:   end,
		})
	}
	return records, nil
}
