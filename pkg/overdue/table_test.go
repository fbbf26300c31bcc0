package overdue

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

func TestTrackAndSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overdue.json")
	table, err := NewTable(path)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	today := model.NewDate(2024, time.March, 15)
	tomorrow := today.AddDays(1)
	yesterday := today.AddDays(-1)

	table.Track(model.Task{ID: 1, Title: "soon", DueDate: &tomorrow}, "evt1", today)
	table.Track(model.Task{ID: 2, Title: "late", DueDate: &yesterday}, "evt2", today)
	table.Track(model.Task{ID: 3, Title: "done", DueDate: &tomorrow, Completed: true}, "evt3", today)
	table.Track(model.Task{ID: 4, Title: "undated"}, "evt4", today)

	if len(table.Entries) != 1 {
		t.Fatalf("Expected only the pending future task to be tracked, got %v", table.Entries)
	}
	if err := table.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := NewTable(path)
	if err != nil {
		t.Fatalf("NewTable reload failed: %v", err)
	}
	if got := reloaded.Sweep(tomorrow); len(got) != 0 {
		t.Errorf("Task due tomorrow is not overdue on its due date, got %v", got)
	}
	swept := reloaded.Sweep(tomorrow.AddDays(1))
	if len(swept) != 1 || swept[0].EventID != "evt1" {
		t.Fatalf("Expected evt1 to be swept, got %v", swept)
	}
	if len(reloaded.Entries) != 0 {
		t.Errorf("Expected swept entry to be removed")
	}
}
