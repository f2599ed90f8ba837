// Package calendar implements the room-booking interval store: a bounded
// time horizon per room in which events occupy non-overlapping half-open
// intervals aligned to a fixed slot granularity.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultStep is the slot granularity applied when none is configured.
const DefaultStep = time.Minute

// Event is a booked interval in a single room. Start is inclusive, End is
// exclusive. The ID identifies the event independently of its display name.
type Event struct {
	ID    string
	Room  string
	Name  string
	Start time.Time
	End   time.Time
}

// Duration returns the span the event covers.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// EventUpdate carries replacement values for EditEvent. Nil fields keep the
// original event's value.
type EventUpdate struct {
	Room     *string
	Name     *string
	Start    *time.Time
	Duration *time.Duration
}

// CopyTarget carries placement values for CopyEvent. Nil fields default to
// the source event's values.
type CopyTarget struct {
	Room     *string
	Start    *time.Time
	Duration *time.Duration
}

// Calendar owns the occupancy state for a fixed set of rooms over a fixed
// horizon. Events are kept per room as a slice of non-overlapping intervals
// ordered by start time, so lookups and overlap checks are O(log n) in the
// number of events rather than O(range / step).
//
// The calendar assumes a single writer. Callers embedding it in a concurrent
// context must serialise mutating operations externally; multi-field updates
// are not atomic at any finer grain.
type Calendar struct {
	rooms       []string
	roomIndex   map[string]int
	events      map[string][]Event
	origin      time.Time
	end         time.Time
	step        time.Duration
	idGenerator func() string
}

// New constructs a calendar covering [origin, origin+horizonDays). A zero
// origin means "now"; the origin is truncated down to the slot granularity.
// The room set and horizon are fixed for the calendar's lifetime. A nil
// idGenerator defaults to random UUIDs.
func New(rooms []string, origin time.Time, horizonDays int, step time.Duration, idGenerator func() string) (*Calendar, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("calendar: at least one room is required")
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("calendar: horizon must be at least one day, got %d", horizonDays)
	}
	if step <= 0 {
		step = DefaultStep
	}
	if origin.IsZero() {
		origin = time.Now()
	}
	origin = origin.Truncate(step)
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}

	roomIndex := make(map[string]int, len(rooms))
	ordered := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if room == "" {
			return nil, fmt.Errorf("calendar: room identifiers must not be empty")
		}
		if _, ok := roomIndex[room]; ok {
			return nil, fmt.Errorf("calendar: duplicate room %q", room)
		}
		roomIndex[room] = len(ordered)
		ordered = append(ordered, room)
	}

	return &Calendar{
		rooms:       ordered,
		roomIndex:   roomIndex,
		events:      make(map[string][]Event, len(ordered)),
		origin:      origin,
		end:         origin.Add(time.Duration(horizonDays) * 24 * time.Hour),
		step:        step,
		idGenerator: idGenerator,
	}, nil
}

// Rooms returns the room identifiers in construction order.
func (c *Calendar) Rooms() []string {
	out := make([]string, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Origin returns the inclusive lower bound of the covered horizon.
func (c *Calendar) Origin() time.Time { return c.origin }

// End returns the upper bound of the covered horizon. Events may end exactly
// at this instant but not after it.
func (c *Calendar) End() time.Time { return c.end }

// Step returns the slot granularity.
func (c *Calendar) Step() time.Duration { return c.step }

// AddEvent books a new event in room starting at start for the given
// duration. The start is truncated down to the slot granularity and the
// duration is rounded up to a whole number of slots. The call either books
// the full range or mutates nothing.
func (c *Calendar) AddEvent(room string, start time.Time, name string, duration time.Duration) (Event, error) {
	if _, ok := c.roomIndex[room]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownRoom, room)
	}
	if duration <= 0 {
		return Event{}, ErrInvalidDuration
	}

	start = c.align(start)
	end := start.Add(c.snapDuration(duration))
	if err := c.checkRange(start, end); err != nil {
		return Event{}, err
	}
	if blocking, ok := c.overlapping(room, start, end, ""); ok {
		return Event{}, &OverlapError{Room: room, Start: start, End: end, WithID: blocking.ID, WithName: blocking.Name}
	}

	event := Event{ID: c.idGenerator(), Room: room, Name: name, Start: start, End: end}
	c.insert(event)
	return event, nil
}

// RemoveEvent deletes the event named name covering the instant at in room.
// Removal is tolerant: when no such event exists the calendar is left
// unchanged and ok is false.
func (c *Calendar) RemoveEvent(room string, at time.Time, name string) (removed Event, ok bool) {
	idx, event, found := c.eventAt(room, c.align(at))
	if !found || event.Name != name {
		return Event{}, false
	}
	c.events[room] = append(c.events[room][:idx], c.events[room][idx+1:]...)
	return event, true
}

// FindEvent returns the event named name covering the instant at in room.
func (c *Calendar) FindEvent(room string, at time.Time, name string) (Event, bool) {
	_, event, found := c.eventAt(room, c.align(at))
	if !found || event.Name != name {
		return Event{}, false
	}
	return event, true
}

// CheckOverlap reports whether any event other than ignoreID occupies part
// of the half-open range [start, end) in room. The start is truncated down
// and the end rounded up to the slot granularity, so the probed range always
// covers whole slots.
func (c *Calendar) CheckOverlap(room string, start, end time.Time, ignoreID string) bool {
	_, ok := c.overlapping(room, c.align(start), c.alignUp(end), ignoreID)
	return ok
}

// EditEvent replaces the event named name covering at in room with a version
// carrying the update's values; unset fields keep the original's. The target
// range is validated before the original is touched, so a failed edit leaves
// the calendar exactly as it was.
func (c *Calendar) EditEvent(room string, at time.Time, name string, update EventUpdate) (Event, error) {
	if _, ok := c.roomIndex[room]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownRoom, room)
	}
	idx, original, found := c.eventAt(room, c.align(at))
	if !found || original.Name != name {
		return Event{}, fmt.Errorf("%w: %q in room %q", ErrNotFound, name, room)
	}

	target := original
	if update.Room != nil {
		target.Room = *update.Room
	}
	if update.Name != nil {
		target.Name = *update.Name
	}
	duration := original.Duration()
	if update.Duration != nil {
		duration = *update.Duration
	}
	if update.Start != nil {
		target.Start = *update.Start
	}

	if _, ok := c.roomIndex[target.Room]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownRoom, target.Room)
	}
	if duration <= 0 {
		return Event{}, ErrInvalidDuration
	}
	target.Start = c.align(target.Start)
	target.End = target.Start.Add(c.snapDuration(duration))
	if err := c.checkRange(target.Start, target.End); err != nil {
		return Event{}, err
	}
	if blocking, ok := c.overlapping(target.Room, target.Start, target.End, original.ID); ok {
		return Event{}, &OverlapError{Room: target.Room, Start: target.Start, End: target.End, WithID: blocking.ID, WithName: blocking.Name}
	}

	// Splice out by the index found above; a lookup by time would have to
	// re-derive the event's position from its (possibly unaligned) start.
	c.events[room] = append(c.events[room][:idx], c.events[room][idx+1:]...)
	c.insert(target)
	return target, nil
}

// CopyEvent duplicates the event named name covering at in room into the
// target placement; unset fields default to the source's values. The copy
// receives a fresh ID and the source is left untouched, including on
// conflict.
func (c *Calendar) CopyEvent(room string, at time.Time, name string, target CopyTarget) (Event, error) {
	if _, ok := c.roomIndex[room]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownRoom, room)
	}
	source, found := c.FindEvent(room, at, name)
	if !found {
		return Event{}, fmt.Errorf("%w: %q in room %q", ErrNotFound, name, room)
	}

	duplicate := source
	duplicate.ID = ""
	if target.Room != nil {
		duplicate.Room = *target.Room
	}
	duration := source.Duration()
	if target.Duration != nil {
		duration = *target.Duration
	}
	if target.Start != nil {
		duplicate.Start = *target.Start
	}

	if _, ok := c.roomIndex[duplicate.Room]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownRoom, duplicate.Room)
	}
	if duration <= 0 {
		return Event{}, ErrInvalidDuration
	}
	duplicate.Start = c.align(duplicate.Start)
	duplicate.End = duplicate.Start.Add(c.snapDuration(duration))
	if err := c.checkRange(duplicate.Start, duplicate.End); err != nil {
		return Event{}, err
	}
	if blocking, ok := c.overlapping(duplicate.Room, duplicate.Start, duplicate.End, ""); ok {
		return Event{}, &OverlapError{Room: duplicate.Room, Start: duplicate.Start, End: duplicate.End, WithID: blocking.ID, WithName: blocking.Name}
	}

	duplicate.ID = c.idGenerator()
	c.insert(duplicate)
	return duplicate, nil
}

// EventsAt returns the occupancy row at the slot containing t: for each room
// that has an event covering the instant, the room maps to that event.
func (c *Calendar) EventsAt(t time.Time) map[string]Event {
	at := c.align(t)
	row := make(map[string]Event)
	for _, room := range c.rooms {
		if _, event, found := c.eventAt(room, at); found {
			row[room] = event
		}
	}
	return row
}

// EventsOnDate returns every event intersecting the calendar day containing
// date, grouped by room and ordered by start time.
func (c *Calendar) EventsOnDate(date time.Time) map[string][]Event {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	byRoom := make(map[string][]Event)
	for _, room := range c.rooms {
		for _, event := range c.events[room] {
			if event.Start.Before(dayEnd) && event.End.After(dayStart) {
				byRoom[room] = append(byRoom[room], event)
			}
		}
	}
	return byRoom
}

// Events returns every booked event, grouped by room in construction order
// and ordered by start time within each room.
func (c *Calendar) Events() []Event {
	var out []Event
	for _, room := range c.rooms {
		out = append(out, c.events[room]...)
	}
	return out
}

// Restore replaces the calendar's contents with the provided events, keeping
// their IDs. Snapshots are external input and may carry times off the grid:
// each event's start is truncated down and its end rounded up to the slot
// granularity before validation, so every stored event lands on whole slots.
// Every event is validated against the room set, the horizon, and the
// no-overlap invariant before any state changes; on error the existing
// contents are untouched. Events with an empty ID are assigned a fresh one.
func (c *Calendar) Restore(events []Event) error {
	restored := make(map[string][]Event, len(c.rooms))
	for _, event := range events {
		if _, ok := c.roomIndex[event.Room]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRoom, event.Room)
		}
		event.Start = c.align(event.Start)
		event.End = c.alignUp(event.End)
		if !event.End.After(event.Start) {
			return ErrInvalidDuration
		}
		if err := c.checkRange(event.Start, event.End); err != nil {
			return err
		}
		if blocking, ok := overlappingIn(restored[event.Room], event.Start, event.End, ""); ok {
			return &OverlapError{Room: event.Room, Start: event.Start, End: event.End, WithID: blocking.ID, WithName: blocking.Name}
		}
		if event.ID == "" {
			event.ID = c.idGenerator()
		}
		restored[event.Room] = insertSorted(restored[event.Room], event)
	}
	c.events = restored
	return nil
}

// align truncates t down to the slot granularity relative to the origin.
func (c *Calendar) align(t time.Time) time.Time {
	if t.Before(c.origin) {
		return t
	}
	return c.origin.Add(t.Sub(c.origin).Truncate(c.step))
}

// alignUp rounds t up to the slot granularity relative to the origin.
func (c *Calendar) alignUp(t time.Time) time.Time {
	aligned := c.align(t)
	if aligned.Equal(t) {
		return t
	}
	return aligned.Add(c.step)
}

// snapDuration rounds d up to a whole number of slots.
func (c *Calendar) snapDuration(d time.Duration) time.Duration {
	if r := d % c.step; r > 0 {
		d += c.step - r
	}
	return d
}

func (c *Calendar) checkRange(start, end time.Time) error {
	if start.Before(c.origin) {
		return &OutOfRangeError{Time: start, Origin: c.origin, End: c.end}
	}
	if end.After(c.end) {
		return &OutOfRangeError{Time: end, Origin: c.origin, End: c.end}
	}
	return nil
}

// overlapping returns the first event in room intersecting [start, end),
// skipping the event identified by ignoreID.
func (c *Calendar) overlapping(room string, start, end time.Time, ignoreID string) (Event, bool) {
	return overlappingIn(c.events[room], start, end, ignoreID)
}

func overlappingIn(events []Event, start, end time.Time, ignoreID string) (Event, bool) {
	idx := sort.Search(len(events), func(i int) bool {
		return events[i].End.After(start)
	})
	for ; idx < len(events) && events[idx].Start.Before(end); idx++ {
		if ignoreID != "" && events[idx].ID == ignoreID {
			continue
		}
		return events[idx], true
	}
	return Event{}, false
}

// eventAt returns the index and value of the event covering t in room.
func (c *Calendar) eventAt(room string, t time.Time) (int, Event, bool) {
	events := c.events[room]
	idx := sort.Search(len(events), func(i int) bool {
		return events[i].End.After(t)
	})
	if idx < len(events) && !events[idx].Start.After(t) {
		return idx, events[idx], true
	}
	return 0, Event{}, false
}

func (c *Calendar) insert(event Event) {
	c.events[event.Room] = insertSorted(c.events[event.Room], event)
}

func insertSorted(events []Event, event Event) []Event {
	idx := sort.Search(len(events), func(i int) bool {
		return events[i].Start.After(event.Start)
	})
	events = append(events, Event{})
	copy(events[idx+1:], events[idx:])
	events[idx] = event
	return events
}
