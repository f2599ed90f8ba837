package application

import "time"

// AddEventParams wraps the data required to book a new event.
type AddEventParams struct {
	Room     string
	Name     string
	Start    time.Time
	Duration time.Duration
}

// RemoveEventParams identifies an event to delete by room, covered instant,
// and name.
type RemoveEventParams struct {
	Room string
	At   time.Time
	Name string
}

// FindEventParams identifies an event to look up.
type FindEventParams struct {
	Room string
	At   time.Time
	Name string
}

// EditEventParams identifies an event and carries its replacement values.
// Nil fields keep the original event's value.
type EditEventParams struct {
	Room string
	At   time.Time
	Name string

	NewRoom     *string
	NewName     *string
	NewStart    *time.Time
	NewDuration *time.Duration
}

// CopyEventParams identifies a source event and the placement of its copy.
// Nil fields default to the source's values.
type CopyEventParams struct {
	Room string
	At   time.Time
	Name string

	TargetRoom     *string
	TargetStart    *time.Time
	TargetDuration *time.Duration
}
