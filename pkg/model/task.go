package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps user input onto a Priority. Empty or unknown values
// become medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterHigh, FilterOverdue}

// ParseFilter returns the named filter, falling back to FilterAll for
// anything it does not recognise.
func ParseFilter(s string) Filter {
	for _, f := range Filters {
		if string(f) == s {
			return f
		}
	}
	return FilterAll
}

// Task is a single unit of work held by the store.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// IsOverdue reports whether the task is incomplete and due strictly before today.
func (t Task) IsOverdue(today Date) bool {
	if t.Completed || !t.HasDueDate() {
		return false
	}
	return t.DueDate.Before(today)
}

// Matches reports whether the task passes filter f on the given day.
func (t Task) Matches(f Filter, today Date) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == PriorityHigh
	case FilterOverdue:
		return t.IsOverdue(today)
	default:
		return true
	}
}

// DueLabel renders the due date the way task cards show it.
func (t Task) DueLabel(today Date) string {
	if !t.HasDueDate() {
		return "No due date"
	}
	label := t.DueDate.Format("Jan 2, 2006")
	if t.IsOverdue(today) {
		return "Overdue • " + label
	}
	return label
}

// ActionLabel is the label of the complete/reopen button.
func (t Task) ActionLabel() string {
	if t.Completed {
		return "Reopen"
	}
	return "Complete"
}

// Clone returns a deep copy so callers cannot reach into the store.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return c
}

func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d %s (%s)", mark, t.ID, t.Title, t.Priority)
}

// Stats aggregates a task list.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

// EmptyStateText is shown when a filter selects nothing.
const EmptyStateText = "No tasks found for the current filter."

// Draft is a task as described by an importer, before the store assigns an
// id and timestamps.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *Date
	Completed   bool
}
