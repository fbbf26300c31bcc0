package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	for _, f := range Filters {
		if got := ParseFilter(string(f)); got != f {
			t.Errorf("Expected %s, got %s", f, got)
		}
	}
	for _, s := range []string{"", "bogus", "ALL", "Pending"} {
		if got := ParseFilter(s); got != FilterAll {
			t.Errorf("Expected fallback to all for %q, got %s", s, got)
		}
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"low":    PriorityLow,
		" HIGH ": PriorityHigh,
		"medium": PriorityMedium,
		"":       PriorityMedium,
		"urgent": PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Errorf("ParsePriority(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestDueLabel(t *testing.T) {
	today := NewDate(2024, time.March, 15)
	yesterday := today.AddDays(-1)

	task := Task{Title: "x"}
	if got := task.DueLabel(today); got != "No due date" {
		t.Errorf("Expected 'No due date', got '%s'", got)
	}

	task.DueDate = &yesterday
	if got := task.DueLabel(today); got != "Overdue • Mar 14, 2024" {
		t.Errorf("Expected overdue label, got '%s'", got)
	}

	task.Completed = true
	if got := task.DueLabel(today); got != "Mar 14, 2024" {
		t.Errorf("Expected plain label for completed task, got '%s'", got)
	}
	if task.ActionLabel() != "Reopen" {
		t.Errorf("Expected 'Reopen' for completed task")
	}
}

func TestTaskJSON(t *testing.T) {
	due := NewDate(2023, time.January, 1)
	task := Task{ID: 7, Title: "Buy milk", Priority: PriorityHigh, DueDate: &due}

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"dueDate":"2023-01-01"`) {
		t.Errorf("Expected date-only dueDate, got %s", b)
	}
	if strings.Contains(string(b), "completedAt") {
		t.Errorf("Expected completedAt to be omitted, got %s", b)
	}

	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.DueDate == nil || !back.DueDate.Equal(due.Time) {
		t.Errorf("Expected due %s, got %v", due, back.DueDate)
	}
}

func TestEmptyDueDateIsNoDueDate(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"title":"x","dueDate":""}`), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.HasDueDate() {
		t.Error("Expected empty dueDate to mean no due date")
	}
	if task.IsOverdue(NewDate(2030, time.January, 1)) {
		t.Error("Task without due date can never be overdue")
	}
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	ts := time.Date(2024, time.March, 15, 1, 0, 0, 0, loc) // still the 14th in UTC
	if got := DateOf(ts).String(); got != "2024-03-15" {
		t.Errorf("Expected 2024-03-15, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("Expected error for invalid month")
	}
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", d)
	}
}
