package server

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/notify"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TaskFlow</title>
</head>
<body>
<header><h1>TaskFlow</h1></header>
{{with .Notice}}<div class="notification">{{.Message}}</div>{{end}}
<section class="stats">
  <div><span id="totalTasks">{{.Stats.Total}}</span> Total</div>
  <div><span id="completedTasks">{{.Stats.Completed}}</span> Completed</div>
  <div><span id="pendingTasks">{{.Stats.Pending}}</span> Pending</div>
  <div><span id="completionRate">{{.Stats.CompletionRate}}%</span> Complete</div>
</section>
<form id="taskForm" method="post" action="/tasks">
  <input name="title" placeholder="Task title" required>
  <textarea name="description" placeholder="Description"></textarea>
  <select name="priority">
    <option value="low">Low</option>
    <option value="medium" selected>Medium</option>
    <option value="high">High</option>
  </select>
  <input type="date" name="dueDate" min="{{.Today}}">
  <button type="submit">Add task</button>
</form>
<nav>
{{range .Filters}}  <a class="filter-btn{{if .Active}} active{{end}}" href="/?filter={{.Name}}">{{.Label}}</a>
{{end}}</nav>
<main id="tasksContainer">
{{range .Cards}}
  <article class="task-card{{if .Task.Completed}} completed{{end}}" data-task-id="{{.Task.ID}}">
    <header class="task-header">
      <h3 class="task-title">{{.Task.Title}}</h3>
      <span class="priority-badge priority-{{.Task.Priority}}">{{.Task.Priority}}</span>
      <span class="task-date{{if .Overdue}} overdue{{end}}">{{.DueLabel}}</span>
    </header>
    {{with .Task.Description}}<p class="task-description">{{.}}</p>{{end}}
    <footer class="task-actions">
      <form method="post" action="/tasks/{{.Task.ID}}/toggle"><button class="complete-btn">{{.Task.ActionLabel}}</button></form>
      <form method="post" action="/tasks/{{.Task.ID}}/delete"><button class="delete-btn">Delete</button></form>
    </footer>
  </article>
{{else}}
  <div class="empty-state"><div class="empty-text">{{.EmptyText}}</div></div>
{{end}}
</main>
</body>
</html>
`))

type filterLink struct {
	Name   model.Filter
	Label  string
	Active bool
}

type card struct {
	Task     model.Task
	DueLabel string
	Overdue  bool
}

type pageData struct {
	Notice    *notify.Notice
	Stats     model.Stats
	Today     string
	Filters   []filterLink
	Cards     []card
	EmptyText string
}

// Page renders the task list. A filter query parameter changes the active filter.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if f := r.URL.Query().Get("filter"); f != "" {
		h.store.SetFilter(f)
	}
	today := h.store.Today()
	data := pageData{
		Stats:     h.store.Stats(),
		Today:     today.String(),
		EmptyText: model.EmptyStateText,
	}
	active := h.store.Filter()
	for _, f := range model.Filters {
		data.Filters = append(data.Filters, filterLink{Name: f, Label: filterLabel(f), Active: f == active})
	}
	for _, t := range h.store.FilteredTasks() {
		data.Cards = append(data.Cards, card{Task: t, DueLabel: t.DueLabel(today), Overdue: t.IsOverdue(today)})
	}
	h.mu.Unlock()

	if h.banner != nil {
		if n, ok := h.banner.Current(); ok {
			data.Notice = &n
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

// PageCreate handles the add-task form. Blank titles are ignored.
func (h *Handlers) PageCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	due, err := parseDue(r.PostForm.Get("dueDate"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.store.Add(r.PostForm.Get("title"), r.PostForm.Get("description"), model.Priority(r.PostForm.Get("priority")), due)
	h.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) PageToggle(w http.ResponseWriter, r *http.Request) {
	if id, err := taskID(r); err == nil {
		h.mu.Lock()
		h.store.ToggleComplete(id)
		h.mu.Unlock()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) PageDelete(w http.ResponseWriter, r *http.Request) {
	if id, err := taskID(r); err == nil {
		h.mu.Lock()
		h.store.Delete(id)
		h.mu.Unlock()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func filterLabel(f model.Filter) string {
	if f == model.FilterHigh {
		return "High Priority"
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}
