package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOverlap is returned when a target range intersects an existing event.
	ErrOverlap = errors.New("calendar: overlapping event")
	// ErrNotFound is returned when the referenced event does not exist.
	ErrNotFound = errors.New("calendar: event not found")
	// ErrOutOfRange is returned when a timestamp falls outside the calendar bounds.
	ErrOutOfRange = errors.New("calendar: time outside calendar bounds")
	// ErrUnknownRoom is returned when the referenced room is not part of the calendar.
	ErrUnknownRoom = errors.New("calendar: unknown room")
	// ErrInvalidDuration is returned when an event duration is zero or negative.
	ErrInvalidDuration = errors.New("calendar: duration must be positive")
)

// OverlapError reports the event that blocked a mutation. It unwraps to
// ErrOverlap so callers can match it with errors.Is.
type OverlapError struct {
	Room     string
	Start    time.Time
	End      time.Time
	WithID   string
	WithName string
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("calendar: range %s..%s in room %q overlaps event %q",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.Room, e.WithName)
}

// Unwrap reports the sentinel this error specialises.
func (e *OverlapError) Unwrap() error { return ErrOverlap }

// OutOfRangeError reports a timestamp outside the covered horizon. It unwraps
// to ErrOutOfRange.
type OutOfRangeError struct {
	Time   time.Time
	Origin time.Time
	End    time.Time
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("calendar: %s outside covered range %s..%s",
		e.Time.Format(time.RFC3339), e.Origin.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// Unwrap reports the sentinel this error specialises.
func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }
