package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/room-calendar/internal/calendar"
	"github.com/example/room-calendar/internal/datastore"
)

// SaveSnapshot exports the calendar's events through the configured
// snapshot store.
func (s *BookingService) SaveSnapshot(ctx context.Context) (err error) {
	if s == nil || s.calendar == nil {
		return fmt.Errorf("BookingService is not configured")
	}
	if s.snapshots == nil {
		return fmt.Errorf("snapshot store not configured")
	}

	events := s.calendar.Events()
	logger := s.loggerWith(ctx, "SaveSnapshot", "event_count", len(events))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save snapshot", "error", err)
			return
		}
		logger.InfoContext(ctx, "snapshot saved")
	}()

	return s.snapshots.Save(ctx, recordsFromEvents(events))
}

// LoadSnapshot replaces the calendar's contents with the persisted
// snapshot. A missing snapshot yields an empty calendar. Records that no
// longer fit the calendar (unknown room, outside the horizon, overlapping)
// abort the load and leave the in-memory state untouched.
func (s *BookingService) LoadSnapshot(ctx context.Context) (err error) {
	if s == nil || s.calendar == nil {
		return fmt.Errorf("BookingService is not configured")
	}
	if s.snapshots == nil {
		return fmt.Errorf("snapshot store not configured")
	}

	logger := s.loggerWith(ctx, "LoadSnapshot")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load snapshot", "error", err)
		}
	}()

	records, err := s.snapshots.Load(ctx)
	if err != nil {
		if errors.Is(err, datastore.ErrNoSnapshot) {
			logger.InfoContext(ctx, "no snapshot found, starting empty")
			return s.calendar.Restore(nil)
		}
		return err
	}

	if err := s.calendar.Restore(eventsFromRecords(records)); err != nil {
		return mapCalendarError(err)
	}
	logger.InfoContext(ctx, "snapshot loaded", "event_count", len(records))
	return nil
}

func recordsFromEvents(events []calendar.Event) []datastore.EventRecord {
	records := make([]datastore.EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, datastore.EventRecord{
			ID:    event.ID,
			Room:  event.Room,
			Name:  event.Name,
			Start: event.Start,
			End:   event.End,
		})
	}
	return records
}

func eventsFromRecords(records []datastore.EventRecord) []calendar.Event {
	events := make([]calendar.Event, 0, len(records))
	for _, record := range records {
		events = append(events, calendar.Event{
			ID:    record.ID,
			Room:  record.Room,
			Name:  record.Name,
			Start: record.Start,
			End:   record.End,
		})
	}
	return events
}
