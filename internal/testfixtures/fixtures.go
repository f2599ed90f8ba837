// Package testfixtures provides deterministic clocks, identifier
// generators, and calendar fixtures shared by the test suites.
package testfixtures

import (
	"testing"
	"time"

	"github.com/example/room-calendar/internal/calendar"
)

var referenceTime = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It sits at midnight so it doubles as a calendar origin.
func ReferenceTime() time.Time {
	return referenceTime
}

// DefaultRooms returns the room set used by calendar fixtures.
func DefaultRooms() []string {
	return []string{"Conference Room", "Meeting Room 1", "Meeting Room 2"}
}

// CalendarOption configures the calendar fixture.
type CalendarOption func(*calendarFixture)

type calendarFixture struct {
	rooms       []string
	origin      time.Time
	horizonDays int
	step        time.Duration
	idGenerator func() string
}

// WithRooms overrides the fixture's room set.
func WithRooms(rooms ...string) CalendarOption {
	return func(f *calendarFixture) { f.rooms = rooms }
}

// WithOrigin overrides the fixture's origin timestamp.
func WithOrigin(origin time.Time) CalendarOption {
	return func(f *calendarFixture) { f.origin = origin }
}

// WithHorizonDays overrides the fixture's horizon.
func WithHorizonDays(days int) CalendarOption {
	return func(f *calendarFixture) { f.horizonDays = days }
}

// WithStep overrides the fixture's slot granularity.
func WithStep(step time.Duration) CalendarOption {
	return func(f *calendarFixture) { f.step = step }
}

// WithCalendarIDGenerator overrides the event ID generator.
func WithCalendarIDGenerator(generator func() string) CalendarOption {
	return func(f *calendarFixture) { f.idGenerator = generator }
}

// NewCalendar builds a deterministic calendar: reference-time origin, a 30
// day horizon, one minute slots, and sequential "event-N" identifiers.
func NewCalendar(tb testing.TB, opts ...CalendarOption) *calendar.Calendar {
	tb.Helper()

	fixture := calendarFixture{
		rooms:       DefaultRooms(),
		origin:      referenceTime,
		horizonDays: 30,
		step:        time.Minute,
		idGenerator: NewIDGenerator("event").NextFunc(),
	}
	for _, opt := range opts {
		opt(&fixture)
	}

	cal, err := calendar.New(fixture.rooms, fixture.origin, fixture.horizonDays, fixture.step, fixture.idGenerator)
	if err != nil {
		tb.Fatalf("failed to build calendar fixture: %v", err)
	}
	return cal
}

// Slot returns the instant the given number of hours and minutes after the
// reference time, handy for positioning fixture events.
func Slot(hours, minutes int) time.Time {
	return referenceTime.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}
