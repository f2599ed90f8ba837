package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/room-calendar/internal/calendar"
	"github.com/example/room-calendar/internal/datastore"
)

// BookingService orchestrates validation, logging, and snapshot persistence
// around the calendar store. The calendar itself performs no I/O and emits
// no logs; all observability lives here.
type BookingService struct {
	calendar  *calendar.Calendar
	snapshots datastore.Store
	logger    *slog.Logger
}

// NewBookingService constructs a booking service. The snapshot store may be
// nil when persistence is not needed.
func NewBookingService(cal *calendar.Calendar, snapshots datastore.Store) *BookingService {
	return NewBookingServiceWithLogger(cal, snapshots, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(cal *calendar.Calendar, snapshots datastore.Store, logger *slog.Logger) *BookingService {
	return &BookingService{calendar: cal, snapshots: snapshots, logger: defaultLogger(logger)}
}

// Calendar exposes the underlying store for read-only callers.
func (s *BookingService) Calendar() *calendar.Calendar {
	return s.calendar
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// AddEvent validates and books a new event.
func (s *BookingService) AddEvent(ctx context.Context, params AddEventParams) (event calendar.Event, err error) {
	if s == nil || s.calendar == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "AddEvent",
		"room", params.Room,
		"name", params.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event added")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Room) == "" {
		vErr.add("room", "room is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		vErr.add("name", "name is required")
	}
	if params.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if params.Duration <= 0 {
		vErr.add("duration", "duration must be positive")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	event, err = s.calendar.AddEvent(params.Room, params.Start, params.Name, params.Duration)
	if err != nil {
		err = mapCalendarError(err)
		return
	}
	return
}

// RemoveEvent deletes an event if present. Removal is tolerant: a missing
// event is reported through removed=false, not an error.
func (s *BookingService) RemoveEvent(ctx context.Context, params RemoveEventParams) (removed bool, err error) {
	if s == nil || s.calendar == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "RemoveEvent",
		"room", params.Room,
		"name", params.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event removal finished", "removed", removed)
	}()

	_, removed = s.calendar.RemoveEvent(params.Room, params.At, params.Name)
	return
}

// FindEvent looks up an event by room, covered instant, and name.
func (s *BookingService) FindEvent(ctx context.Context, params FindEventParams) (calendar.Event, error) {
	if s == nil || s.calendar == nil {
		return calendar.Event{}, fmt.Errorf("BookingService is not configured")
	}

	event, ok := s.calendar.FindEvent(params.Room, params.At, params.Name)
	if !ok {
		return calendar.Event{}, fmt.Errorf("%w: %q in room %q", ErrNotFound, params.Name, params.Room)
	}
	return event, nil
}

// EditEvent applies replacement values to an existing event.
func (s *BookingService) EditEvent(ctx context.Context, params EditEventParams) (event calendar.Event, err error) {
	if s == nil || s.calendar == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "EditEvent",
		"room", params.Room,
		"name", params.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to edit event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event edited")
	}()

	vErr := &ValidationError{}
	if params.NewName != nil && strings.TrimSpace(*params.NewName) == "" {
		vErr.add("new_name", "name must not be blank")
	}
	if params.NewDuration != nil && *params.NewDuration <= 0 {
		vErr.add("new_duration", "duration must be positive")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	event, err = s.calendar.EditEvent(params.Room, params.At, params.Name, calendar.EventUpdate{
		Room:     params.NewRoom,
		Name:     params.NewName,
		Start:    params.NewStart,
		Duration: params.NewDuration,
	})
	if err != nil {
		err = mapCalendarError(err)
		return
	}
	return
}

// CopyEvent duplicates an existing event into a new range.
func (s *BookingService) CopyEvent(ctx context.Context, params CopyEventParams) (event calendar.Event, err error) {
	if s == nil || s.calendar == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "CopyEvent",
		"room", params.Room,
		"name", params.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to copy event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event copied")
	}()

	if params.TargetDuration != nil && *params.TargetDuration <= 0 {
		vErr := &ValidationError{}
		vErr.add("target_duration", "duration must be positive")
		err = vErr
		return
	}

	event, err = s.calendar.CopyEvent(params.Room, params.At, params.Name, calendar.CopyTarget{
		Room:     params.TargetRoom,
		Start:    params.TargetStart,
		Duration: params.TargetDuration,
	})
	if err != nil {
		err = mapCalendarError(err)
		return
	}
	return
}

// EventsAt returns the occupancy row at the slot containing t.
func (s *BookingService) EventsAt(ctx context.Context, t time.Time) (map[string]calendar.Event, error) {
	if s == nil || s.calendar == nil {
		return nil, fmt.Errorf("BookingService is not configured")
	}
	return s.calendar.EventsAt(t), nil
}

// EventsOnDate returns all events intersecting the day containing date,
// grouped by room.
func (s *BookingService) EventsOnDate(ctx context.Context, date time.Time) (map[string][]calendar.Event, error) {
	if s == nil || s.calendar == nil {
		return nil, fmt.Errorf("BookingService is not configured")
	}
	return s.calendar.EventsOnDate(date), nil
}

func mapCalendarError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, calendar.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, calendar.ErrOverlap):
		return fmt.Errorf("%w: %v", ErrOverlap, err)
	case errors.Is(err, calendar.ErrOutOfRange):
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	case errors.Is(err, calendar.ErrUnknownRoom):
		return fmt.Errorf("%w: %v", ErrUnknownRoom, err)
	case errors.Is(err, calendar.ErrInvalidDuration):
		vErr := &ValidationError{}
		vErr.add("duration", "duration must be positive")
		return vErr
	}
	return err
}
