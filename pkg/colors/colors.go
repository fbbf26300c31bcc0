// Package colors picks Google Calendar event colours for tasks.
package colors

import "github.com/harrisonrobin/taskflow/pkg/model"

// Google Calendar event colour ids.
const (
	Lavender  = "1"
	Sage      = "2"
	Banana    = "5"
	Tangerine = "6"
	Graphite  = "8"
	Tomato    = "11"
)

var byPriority = map[model.Priority]string{
	model.PriorityLow:    Sage,
	model.PriorityMedium: Banana,
	model.PriorityHigh:   Tomato,
}

// ForTask returns the colour id for a task on the given day. Completed tasks
// are grey, overdue ones orange, the rest follow their priority.
func ForTask(t model.Task, today model.Date) string {
	switch {
	case t.Completed:
		return Graphite
	case t.IsOverdue(today):
		return Tangerine
	}
	if id, ok := byPriority[t.Priority]; ok {
		return id
	}
	return Lavender
}
