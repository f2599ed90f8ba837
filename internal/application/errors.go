package application

import "errors"

var (
	// ErrNotFound is returned when the referenced event does not exist.
	ErrNotFound = errors.New("application: event not found")
	// ErrOverlap is returned when a booking intersects an existing event.
	ErrOverlap = errors.New("application: booking overlaps an existing event")
	// ErrOutOfRange is returned when a timestamp falls outside the calendar horizon.
	ErrOutOfRange = errors.New("application: time outside the calendar horizon")
	// ErrUnknownRoom is returned when the referenced room is not configured.
	ErrUnknownRoom = errors.New("application: unknown room")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
