// Package overdue remembers which mirrored calendar events belong to dated,
// pending tasks so they can be flagged once their due date passes.
package overdue

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

type Entry struct {
	TaskID  int64      `json:"task_id"`
	EventID string     `json:"event_id"`
	Title   string     `json:"title"`
	Due     model.Date `json:"due"`
}

type Table struct {
	Entries map[int64]Entry `json:"entries"`
	Path    string          `json:"-"`
	dirty   bool
}

// NewTable opens the table stored at path, starting empty if the file does
// not exist.
func NewTable(path string) (*Table, error) {
	t := &Table{
		Path:    path,
		Entries: make(map[int64]Entry),
	}
	if _, err := os.Stat(path); err == nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(t)
}

func (t *Table) Save() error {
	if !t.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.Path), 0700); err != nil {
		return err
	}

	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(t)
	if err == nil {
		t.dirty = false
	}
	return err
}

// Track records a task whose event should be flagged when it becomes
// overdue. Completed tasks, undated tasks and tasks that are already overdue
// are removed instead.
func (t *Table) Track(task model.Task, eventID string, today model.Date) {
	if task.Completed || !task.HasDueDate() || task.IsOverdue(today) {
		t.Remove(task.ID)
		return
	}
	e := Entry{TaskID: task.ID, EventID: eventID, Title: task.Title, Due: *task.DueDate}
	if old, exists := t.Entries[task.ID]; !exists || old != e {
		t.Entries[task.ID] = e
		t.dirty = true
	}
}

func (t *Table) Remove(taskID int64) {
	if _, exists := t.Entries[taskID]; exists {
		delete(t.Entries, taskID)
		t.dirty = true
	}
}

// Sweep returns the entries whose due date is before today and drops them.
func (t *Table) Sweep(today model.Date) []Entry {
	var swept []Entry
	for id, e := range t.Entries {
		if e.Due.Before(today) {
			swept = append(swept, e)
			delete(t.Entries, id)
			t.dirty = true
		}
	}
	return swept
}
