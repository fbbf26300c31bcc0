package google

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/colors"
	"github.com/harrisonrobin/taskflow/pkg/model"
)

func TestConvertTask(t *testing.T) {
	today := model.NewDate(2024, time.March, 15)
	due := today.AddDays(-2)
	task := model.Task{
		ID:          1710500000000,
		Title:       "Pay rent",
		Description: "Transfer to landlord",
		Priority:    model.PriorityHigh,
		DueDate:     &due,
	}

	event, err := ConvertTask(task, today)
	if err != nil {
		t.Fatalf("ConvertTask failed: %v", err)
	}
	if event.Summary != "! Pay rent" {
		t.Errorf("Expected overdue prefix, got '%s'", event.Summary)
	}
	if event.Start.Date != "2024-03-13" || event.End.Date != "2024-03-14" {
		t.Errorf("Expected all-day event on 2024-03-13, got %s..%s", event.Start.Date, event.End.Date)
	}
	if event.ColorId != colors.Tangerine {
		t.Errorf("Expected overdue colour, got %s", event.ColorId)
	}
	if !strings.Contains(event.Description, "Transfer to landlord") || !strings.Contains(event.Description, "Priority: high") {
		t.Errorf("Unexpected description: %s", event.Description)
	}
	if id, ok := TaskIDFromEvent(event); !ok || id != task.ID {
		t.Errorf("Expected task id %d in extended properties, got %d", task.ID, id)
	}

	task.Completed = true
	event, _ = ConvertTask(task, today)
	if event.Summary != "✓ Pay rent" {
		t.Errorf("Expected completed prefix, got '%s'", event.Summary)
	}
}

func TestConvertTaskWithoutDueDate(t *testing.T) {
	if _, err := ConvertTask(model.Task{ID: 1, Title: "x"}, model.NewDate(2024, 1, 1)); err == nil {
		t.Error("Expected error for undated task")
	}
}

func TestEventNeedsUpdate(t *testing.T) {
	base := &calendar.Event{
		Summary: "a",
		ColorId: "5",
		Start:   &calendar.EventDateTime{Date: "2024-01-01"},
		End:     &calendar.EventDateTime{Date: "2024-01-02"},
	}
	same := *base
	if patch := EventNeedsUpdate(base, &same); patch != nil {
		t.Errorf("Expected no patch for identical events, got %+v", patch)
	}

	moved := *base
	moved.Start = &calendar.EventDateTime{Date: "2024-01-05"}
	moved.End = &calendar.EventDateTime{Date: "2024-01-06"}
	patch := EventNeedsUpdate(base, &moved)
	if patch == nil || patch.Start.Date != "2024-01-05" || patch.Summary != "" {
		t.Errorf("Expected date-only patch, got %+v", patch)
	}
}
