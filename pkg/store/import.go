package store

import "github.com/harrisonrobin/taskflow/pkg/model"

// Import adds drafts in order, so the last draft ends up first, and
// completes the ones marked completed. Drafts with blank titles are skipped.
// It returns the number of tasks added.
func (s *Store) Import(drafts []model.Draft) int {
	n := 0
	for _, d := range drafts {
		task, err := s.Add(d.Title, d.Description, d.Priority, d.DueDate)
		if err != nil {
			continue
		}
		if d.Completed {
			s.ToggleComplete(task.ID)
		}
		n++
	}
	return n
}
