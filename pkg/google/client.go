package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/index"
)

// NewClient authenticates and returns a client for the calendar with the
// given display name.
func NewClient(ctx context.Context, calendarName string, idx *index.EventIndex) (*CalendarClient, error) {
	client, err := auth.GetClient(ctx, auth.CalendarScopes)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarID, err := FindCalendar(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx), nil
}

// FindCalendar resolves a calendar's display name to its id.
func FindCalendar(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range calendarList.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", name)
}
