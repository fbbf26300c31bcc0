package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

type Annotation struct {
	Description string      `json:"description"`
	Entry       *CustomTime `json:"entry"`
}

// Task is one record of `task export`.
type Task struct {
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	Due         *CustomTime  `json:"due,omitempty"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority,omitempty"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Entry       *CustomTime  `json:"entry,omitempty"`
	End         *CustomTime  `json:"end,omitempty"`
}

// Draft converts the record into a TaskFlow draft. Annotations become the
// description, one per line. The due date keeps the calendar day in loc.
func (t Task) Draft(loc *time.Location) model.Draft {
	d := model.Draft{
		Title:     t.Description,
		Priority:  priorityFromTaskwarrior(t.Priority),
		Completed: t.Status == COMPLETED,
	}

	var notes []string
	if t.Project != "" {
		notes = append(notes, "Project: "+t.Project)
	}
	for _, a := range t.Annotations {
		notes = append(notes, a.Description)
	}
	d.Description = strings.Join(notes, "\n")

	if t.Due != nil && !t.Due.IsZero() {
		due := model.DateOf(t.Due.In(loc))
		d.DueDate = &due
	}
	return d
}

func priorityFromTaskwarrior(p string) model.Priority {
	switch p {
	case "H":
		return model.PriorityHigh
	case "L":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
