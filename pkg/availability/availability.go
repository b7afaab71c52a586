// Package availability turns calendar events into free time.
//
// Availability is advisory: when the calendar cannot be read the whole
// window is reported as free.
package availability

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/model"
)

// DefaultTimeout bounds a single calendar fetch.
const DefaultTimeout = 10 * time.Second

// EventSource reads busy intervals from a calendar.
type EventSource interface {
	GetEvents(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error)
}

// SourceFunc adapts a function to an EventSource.
type SourceFunc func(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error)

func (f SourceFunc) GetEvents(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	return f(ctx, start, end)
}

// Resolver computes free slots for a window.
type Resolver struct {
	source  EventSource
	timeout time.Duration
}

// NewResolver creates a Resolver reading from source. A nil source means the
// calendar is unavailable. A non-positive timeout selects DefaultTimeout.
func NewResolver(source EventSource, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{source: source, timeout: timeout}
}

// FreeSlots returns the ordered, non-overlapping free slots in w.
func (r *Resolver) FreeSlots(ctx context.Context, w model.Window) []model.TimeSlot {
	if !w.End.After(w.Start) {
		return nil
	}
	events, err := r.fetch(ctx, w)
	if err != nil {
		ev := log.Error()
		if errors.Is(err, errNoSource) {
			ev = log.Debug()
		}
		ev.Err(err).
			Time("start", w.Start).
			Time("end", w.End).
			Msg("calendar fetch failed, treating window as free")
		return []model.TimeSlot{{Start: w.Start, End: w.End}}
	}
	return FreeSlots(events, w)
}

// TotalMinutes returns the free minutes in w.
func (r *Resolver) TotalMinutes(ctx context.Context, w model.Window) int {
	return TotalMinutes(r.FreeSlots(ctx, w))
}

func (r *Resolver) fetch(ctx context.Context, w model.Window) (events []model.CalendarEvent, err error) {
	if r.source == nil {
		return nil, errNoSource
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		events []model.CalendarEvent
		err    error
	}
	done := make(chan result, 1)
	go func() {
		evs, err := r.source.GetEvents(ctx, w.Start, w.End)
		done <- result{evs, err}
	}()

	// The source may ignore ctx, so the deadline is enforced here as well.
	select {
	case res := <-done:
		return res.events, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var errNoSource = errors.New("no calendar source configured")

// FreeSlots sweeps the events in start order and returns the gaps inside w.
// Events are clipped to w; invalid events are skipped.
func FreeSlots(events []model.CalendarEvent, w model.Window) []model.TimeSlot {
	if !w.End.After(w.Start) {
		return nil
	}

	busy := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if !ev.Valid() {
			log.Debug().Str("event", ev.ID).Msg("skipping malformed calendar event")
			continue
		}
		if ev.Start.Before(w.Start) {
			ev.Start = w.Start
		}
		if ev.End.After(w.End) {
			ev.End = w.End
		}
		if !ev.End.After(ev.Start) {
			continue
		}
		busy = append(busy, ev)
	}
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	var slots []model.TimeSlot
	cursor := w.Start
	for _, ev := range busy {
		if ev.Start.After(cursor) {
			slots = append(slots, model.TimeSlot{Start: cursor, End: ev.Start})
		}
		if ev.End.After(cursor) {
			cursor = ev.End
		}
	}
	if cursor.Before(w.End) {
		slots = append(slots, model.TimeSlot{Start: cursor, End: w.End})
	}
	return slots
}

// TotalMinutes sums the whole minutes of each slot.
func TotalMinutes(slots []model.TimeSlot) int {
	total := 0
	for _, s := range slots {
		total += s.Minutes()
	}
	return total
}
