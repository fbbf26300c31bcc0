package google

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/harrisonrobin/taskflow/pkg/colors"
	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

// CalendarClient mirrors tasks into one Google Calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
}

func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	if idx != nil {
		idx.Bind(calendarID)
	}
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx}
}

// SyncResult counts what a Mirror call did.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
	Deleted   int
}

func (r SyncResult) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d deleted", r.Created, r.Updated, r.Unchanged, r.Deleted)
}

// Mirror makes the calendar reflect every dated task and removes events of
// tasks that are gone or no longer dated. Tasks that are pending and not yet
// overdue are recorded in table, when one is given, for a later Sweep.
func (c *CalendarClient) Mirror(ctx context.Context, tasks []model.Task, today model.Date, table *overdue.Table) (SyncResult, error) {
	var res SyncResult
	live := make(map[int64]bool)

	for _, task := range tasks {
		if !task.HasDueDate() {
			continue
		}
		live[task.ID] = true

		event, outcome, err := c.SyncEvent(ctx, task, today)
		if err != nil {
			return res, fmt.Errorf("error syncing task %d: %w", task.ID, err)
		}
		switch outcome {
		case OutcomeCreated:
			res.Created++
		case OutcomeUpdated:
			res.Updated++
		default:
			res.Unchanged++
		}
		if table != nil {
			table.Track(task, event.Id, today)
		}
	}

	if c.index == nil {
		return res, nil
	}
	for _, link := range c.index.Orphans(live) {
		if err := c.DeleteEvent(ctx, link.EventID); err != nil {
			return res, fmt.Errorf("error deleting event of task %d: %w", link.TaskID, err)
		}
		c.index.Remove(link.TaskID)
		if table != nil {
			table.Remove(link.TaskID)
		}
		res.Deleted++
	}
	return res, nil
}

type SyncOutcome int

const (
	OutcomeUnchanged SyncOutcome = iota
	OutcomeCreated
	OutcomeUpdated
)

// SyncEvent creates the task's event or patches the existing one.
func (c *CalendarClient) SyncEvent(ctx context.Context, task model.Task, today model.Date) (*calendar.Event, SyncOutcome, error) {
	event, err := ConvertTask(task, today)
	if err != nil {
		return nil, OutcomeUnchanged, err
	}

	var existing *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(task.ID); eventID != "" {
			existing, err = c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil || existing.Status == "cancelled" {
				existing = nil
			}
		}
	}
	if existing == nil {
		existing, err = c.GetEventByTaskID(ctx, task.ID)
		if err != nil {
			return nil, OutcomeUnchanged, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existing != nil {
		patch := EventNeedsUpdate(existing, event)
		if patch == nil {
			c.remember(task.ID, existing.Id)
			return existing, OutcomeUnchanged, nil
		}
		updated, err := c.PatchEvent(ctx, existing.Id, patch)
		if err != nil {
			return nil, OutcomeUnchanged, err
		}
		c.remember(task.ID, updated.Id)
		return updated, OutcomeUpdated, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, OutcomeUnchanged, err
	}
	c.remember(task.ID, created.Id)
	return created, OutcomeCreated, nil
}

// Sweep flags the events of tracked tasks whose due date has passed since
// the last sync. It returns how many events were patched.
func (c *CalendarClient) Sweep(ctx context.Context, table *overdue.Table, today model.Date) int {
	patched := 0
	for _, e := range table.Sweep(today) {
		patch := &calendar.Event{
			Summary: "! " + e.Title,
			ColorId: colors.Tangerine,
		}
		if _, err := c.PatchEvent(ctx, e.EventID, patch); err != nil {
			log.Printf("Sweep: error patching event %s: %v", e.EventID, err)
			continue
		}
		patched++
	}
	return patched
}

func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event. Events that are already gone are not an error.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	err := c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return nil
	}
	return err
}

// GetEventByTaskID searches for the event carrying the task id.
func (c *CalendarClient) GetEventByTaskID(ctx context.Context, taskID int64) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%d", TaskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func (c *CalendarClient) remember(taskID int64, eventID string) {
	if c.index != nil {
		c.index.Set(taskID, eventID)
	}
}
