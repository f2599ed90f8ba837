package datastore

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// JSONStore persists snapshots as JSON-lines: one record object per line.
type JSONStore struct {
	Path string
}

// NewJSONStore returns a JSON-lines snapshot store writing to path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Save writes every record as a single JSON line.
func (s *JSONStore) Save(ctx context.Context, records []EventRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("datastore: encode event %q: %w", record.ID, err)
		}
	}
	return writeFileAtomic(s.Path, buf.Bytes())
}

// Load reads records line by line.
func (s *JSONStore) Load(ctx context.Context) ([]EventRecord, error) {
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

	var records []EventRecord
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var record EventRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("datastore: line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
