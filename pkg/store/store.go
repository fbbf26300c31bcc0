// Package store holds the task list and the active filter, and derives the
// filtered view and statistics from them.
package store

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

// ErrEmptyTitle is returned by Add when the title is blank after trimming.
var ErrEmptyTitle = errors.New("task title is empty")

const (
	MsgCreated  = "Task created successfully"
	MsgComplete = "Task completed"
	MsgReopened = "Task reopened"
	MsgDeleted  = "Task deleted"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Saver persists the full task list after every mutation. Failures are
// logged and never reach the caller.
type Saver interface {
	Save(tasks []model.Task) error
}

// Notifier shows a short acknowledgment to the user.
type Notifier interface {
	Notify(message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type Option func(*Store)

func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }

func WithSaver(sv Saver) Option { return func(s *Store) { s.saver = sv } }

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

// WithTasks preloads the store. Tasks are expected newest-first; they are
// checked once every option has been applied, see restore.
func WithTasks(tasks []model.Task) Option {
	return func(s *Store) {
		s.preload = append(s.preload, tasks...)
	}
}

// Store owns the ordered task list (newest first) and the active filter.
// It is not safe for concurrent use.
type Store struct {
	tasks    []model.Task
	filter   model.Filter
	lastID   int64
	clock    Clock
	saver    Saver
	notifier Notifier
	preload  []model.Task
}

func New(opts ...Option) *Store {
	s := &Store{
		filter:   model.FilterAll,
		clock:    SystemClock{},
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(s.preload)
	s.preload = nil
	return s
}

// restore admits previously saved tasks. Blank titles and repeated ids are
// dropped, the priority falls back to medium and CompletedAt is made to
// agree with Completed.
func (s *Store) restore(tasks []model.Task) {
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		t = t.Clone()
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			log.Printf("Warning: dropping stored task %d with an empty title", t.ID)
			continue
		}
		if seen[t.ID] {
			log.Printf("Warning: dropping stored task %d with a duplicate id", t.ID)
			continue
		}
		seen[t.ID] = true

		t.Priority = model.ParsePriority(string(t.Priority))
		if t.DueDate != nil && !t.HasDueDate() {
			t.DueDate = nil
		}
		switch {
		case !t.Completed:
			t.CompletedAt = nil
		case t.CompletedAt == nil:
			at := t.CreatedAt
			if at.IsZero() {
				at = s.clock.Now()
			}
			t.CompletedAt = &at
		}

		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

// Add creates a task and puts it at the front of the list.
func (s *Store) Add(title, description string, priority model.Priority, due *model.Date) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}

	now := s.clock.Now()
	task := model.Task{
		ID:          s.nextID(now),
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    model.ParsePriority(string(priority)),
		CreatedAt:   now,
	}
	if due != nil && !due.IsZero() {
		d := *due
		task.DueDate = &d
	}

	s.tasks = append([]model.Task{task}, s.tasks...)
	s.changed(MsgCreated)
	return task.Clone(), nil
}

// ToggleComplete flips the completed flag of the task with the given id.
// The second result is false when no such task exists.
func (s *Store) ToggleComplete(id int64) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}

	t := &s.tasks[i]
	t.Completed = !t.Completed
	msg := MsgReopened
	if t.Completed {
		now := s.clock.Now()
		t.CompletedAt = &now
		msg = MsgComplete
	} else {
		t.CompletedAt = nil
	}

	updated := t.Clone()
	s.changed(msg)
	return updated, true
}

// Delete removes the task with the given id and reports whether it existed.
func (s *Store) Delete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.changed(MsgDeleted)
	return true
}

// SetFilter activates the named filter and returns the one actually in
// effect; unknown names select FilterAll.
func (s *Store) SetFilter(name string) model.Filter {
	s.filter = model.ParseFilter(name)
	return s.filter
}

func (s *Store) Filter() model.Filter { return s.filter }

// Today is the current calendar date according to the store's clock.
func (s *Store) Today() model.Date { return model.DateOf(s.clock.Now()) }

// FilteredTasks returns the tasks selected by the active filter in store order.
func (s *Store) FilteredTasks() []model.Task {
	today := s.Today()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Matches(s.filter, today) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Tasks returns every task in store order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Stats() model.Stats {
	return ComputeStats(s.tasks)
}

// ComputeStats counts tasks. CompletionRate is 0 for an empty list.
func ComputeStats(tasks []model.Task) model.Stats {
	st := model.Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the creation time in milliseconds, bumping past
// the last issued id so two tasks created in the same millisecond stay unique.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) changed(msg string) {
	if s.saver != nil {
		if err := s.saver.Save(s.Tasks()); err != nil {
			log.Printf("Warning: failed to save tasks: %v", err)
		}
	}
	s.notifier.Notify(msg)
}
