package model

import "time"

// CalendarEvent is a busy interval read from a calendar.
type CalendarEvent struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// Valid reports whether the event has both bounds and does not end before it
// starts.
func (e CalendarEvent) Valid() bool {
	return !e.Start.IsZero() && !e.End.IsZero() && !e.End.Before(e.Start)
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// TimeSlot is a contiguous stretch of free time.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the whole minutes covered by the slot, never negative.
func (s TimeSlot) Minutes() int {
	if !s.End.After(s.Start) {
		return 0
	}
	return int(s.End.Sub(s.Start) / time.Minute)
}
