package datastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	ical "github.com/arran4/golang-ical"
)

// ICSStore persists snapshots as an iCalendar file: one VEVENT per record,
// with the record ID as UID, the name as SUMMARY, and the room as LOCATION.
type ICSStore struct {
	Path string
}

// NewICSStore returns an iCalendar snapshot store writing to path.
func NewICSStore(path string) *ICSStore {
	return &ICSStore{Path: path}
}

// Save serializes the records as a VCALENDAR.
func (s *ICSStore) Save(ctx context.Context, records []EventRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//room-calendar//snapshot//EN")

	for _, record := range records {
		event := cal.AddEvent(record.ID)
		event.SetSummary(record.Name)
		event.SetLocation(record.Room)
		event.SetStartAt(record.Start)
		event.SetEndAt(record.End)
		event.SetDtStampTime(record.Start)
	}

	return writeFileAtomic(s.Path, []byte(cal.Serialize()))
}

// Load parses the VCALENDAR back into records.
func (s *ICSStore) Load(ctx context.Context) ([]EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("datastore: parse ics: %w", err)
	}

	var records []EventRecord
	for _, event := range cal.Events() {
		uid := event.GetProperty(ical.ComponentPropertyUniqueId)
		if uid == nil || uid.Value == "" {
			return nil, fmt.Errorf("datastore: vevent missing UID")
		}
		start, err := event.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("datastore: vevent %s start: %w", uid.Value, err)
		}
		end, err := event.GetEndAt()
		if err != nil {
			return nil, fmt.Errorf("datastore: vevent %s end: %w", uid.Value, err)
		}

		record := EventRecord{ID: uid.Value, Start: start, End: end}
		if p := event.GetProperty(ical.ComponentPropertySummary); p != nil {
			record.Name = p.Value
		}
		if p := event.GetProperty(ical.ComponentPropertyLocation); p != nil {
			record.Room = p.Value
		}
		records = append(records, record)
	}
	return records, nil
}
