package google

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/calendar/v3"

	"github.com/csainsbury/kairos/pkg/availability"
	"github.com/csainsbury/kairos/pkg/model"
)

const allDayLayout = "2006-01-02"

// CalendarClient is a read-only Google Calendar API client.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
}

var _ availability.EventSource = (*CalendarClient)(nil)

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID}
}

// CalendarID returns the ID of the calendar being read.
func (c *CalendarClient) CalendarID() string {
	return c.calendarID
}

// GetEvents returns the busy events overlapping [start, end). Cancelled and
// transparent ("show as free") events are left out, as are events whose times
// do not parse.
func (c *CalendarClient) GetEvents(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	call := c.srv.Events.List(c.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	var events []model.CalendarEvent
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, ok := convertEvent(item, start.Location())
			if ok {
				events = append(events, ev)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}
	return events, nil
}

func convertEvent(item *calendar.Event, loc *time.Location) (model.CalendarEvent, bool) {
	if item == nil || item.Status == "cancelled" || item.Transparency == "transparent" {
		return model.CalendarEvent{}, false
	}

	start, err := parseEventTime(item.Start, loc)
	if err != nil {
		log.Debug().Err(err).Str("event", item.Id).Msg("skipping event with bad start")
		return model.CalendarEvent{}, false
	}
	end, err := parseEventTime(item.End, loc)
	if err != nil {
		log.Debug().Err(err).Str("event", item.Id).Msg("skipping event with bad end")
		return model.CalendarEvent{}, false
	}

	ev := model.CalendarEvent{ID: item.Id, Title: item.Summary, Start: start, End: end}
	if !ev.Valid() {
		log.Debug().Str("event", item.Id).Msg("skipping event that ends before it starts")
		return model.CalendarEvent{}, false
	}
	return ev, true
}

// parseEventTime reads a timed (RFC3339) or all-day (date only) bound. All-day
// dates are taken as midnight in loc.
func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if dt == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if dt.DateTime != "" {
		return time.Parse(time.RFC3339, dt.DateTime)
	}
	if dt.Date != "" {
		return time.ParseInLocation(allDayLayout, dt.Date, loc)
	}
	return time.Time{}, fmt.Errorf("no date or dateTime in event")
}
