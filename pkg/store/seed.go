package store

import "github.com/harrisonrobin/taskflow/pkg/model"

// Seed adds the two welcome tasks shown on first launch. It does nothing
// when the store already holds tasks.
func (s *Store) Seed() {
	if len(s.tasks) > 0 {
		return
	}
	today := s.Today()
	review := today.AddDays(3)
	welcome := today.AddDays(7)

	// Added oldest-first so the welcome task ends up on top.
	s.seedOne("Review quarterly goals",
		"Take time to reflect on progress and adjust objectives for the upcoming quarter.",
		model.PriorityHigh, &review)
	s.seedOne("Welcome to TaskFlow",
		"This is your first task. TaskFlow helps you stay organized and focused on what matters most.",
		model.PriorityMedium, &welcome)
}

func (s *Store) seedOne(title, description string, p model.Priority, due *model.Date) {
	now := s.clock.Now()
	t := model.Task{
		ID:          s.nextID(now),
		Title:       title,
		Description: description,
		Priority:    p,
		DueDate:     due,
		CreatedAt:   now,
	}
	s.tasks = append([]model.Task{t}, s.tasks...)
}
