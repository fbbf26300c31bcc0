package google

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/colors"
	"github.com/harrisonrobin/taskflow/pkg/model"
)

// TaskIDProperty is the private extended property holding the task id.
const TaskIDProperty = "taskflow_id"

// ConvertTask turns a dated task into an all-day calendar event.
func ConvertTask(task model.Task, today model.Date) (*calendar.Event, error) {
	if !task.HasDueDate() {
		return nil, fmt.Errorf("task %d has no due date", task.ID)
	}

	summary := task.Title
	switch {
	case task.Completed:
		summary = "✓ " + task.Title
	case task.IsOverdue(today):
		summary = "! " + task.Title
	}

	var desc strings.Builder
	if task.Description != "" {
		desc.WriteString(task.Description)
		desc.WriteString("\n\n")
	}
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(&desc, "Priority: %s\n", task.Priority)
	fmt.Fprintf(&desc, "Status: %s\n", status)
	fmt.Fprintf(&desc, "TaskFlow ID: %d\n", task.ID)

	return &calendar.Event{
		Summary:     summary,
		Description: desc.String(),
		ColorId:     colors.ForTask(task, today),
		Start:       &calendar.EventDateTime{Date: task.DueDate.String()},
		End:         &calendar.EventDateTime{Date: task.DueDate.AddDays(1).String()},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskIDProperty: strconv.FormatInt(task.ID, 10),
			},
		},
	}, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when they already match.
func EventNeedsUpdate(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}
	if eventDate(existing.Start) != eventDate(target.Start) || eventDate(existing.End) != eventDate(target.End) {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch
	}
	return nil
}

func eventDate(dt *calendar.EventDateTime) string {
	if dt == nil {
		return ""
	}
	return dt.Date
}

// TaskIDFromEvent reads the task id back from an event's extended properties.
func TaskIDFromEvent(e *calendar.Event) (int64, bool) {
	if e == nil || e.ExtendedProperties == nil {
		return 0, false
	}
	raw, ok := e.ExtendedProperties.Private[TaskIDProperty]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
