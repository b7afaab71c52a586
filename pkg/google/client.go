package google

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/csainsbury/kairos/pkg/auth"
)

// PrimaryCalendar is the calendar ID Google uses for the account's own calendar.
const PrimaryCalendar = "primary"

// ErrNoCalendar is returned when no calendar carries the requested name.
var ErrNoCalendar = errors.New("calendar not found")

// NewClient creates a Google Calendar client for the calendar named
// calendarName, using the stored OAuth token.
func NewClient(ctx context.Context, calendarName string) (*CalendarClient, error) {
	client, err := auth.GetClient(ctx, auth.CalendarScopes)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarID, err := ResolveCalendarID(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID), nil
}

// ResolveCalendarID maps a calendar's display name to its ID. The empty name
// and "primary" select the primary calendar without a lookup.
func ResolveCalendarID(ctx context.Context, srv *calendar.Service, calendarName string) (string, error) {
	if calendarName == "" || calendarName == PrimaryCalendar {
		return PrimaryCalendar, nil
	}

	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}

	for _, item := range calendarList.Items {
		if item.Summary == calendarName {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s': %w", calendarName, ErrNoCalendar)
}
