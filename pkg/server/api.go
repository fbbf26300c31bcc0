package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/store"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

type filterPayload struct {
	Filter model.Filter `json:"filter"`
}

type taskList struct {
	Filter model.Filter `json:"filter"`
	Tasks  []model.Task `json:"tasks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("JSON encode error: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, msg string) {
	respondWithJSON(w, code, errorResponse{Error: msg})
}

func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListTasks returns the filtered view. A filter query parameter changes the
// active filter first.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if f, ok := r.URL.Query()["filter"]; ok && len(f) > 0 {
		h.store.SetFilter(f[0])
	}
	respondWithJSON(w, http.StatusOK, taskList{Filter: h.store.Filter(), Tasks: h.store.FilteredTasks()})
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("JSON decode error in CreateTask: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	due, err := parseDue(req.DueDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	task, err := h.store.Add(req.Title, req.Description, model.Priority(req.Priority), due)
	if errors.Is(err, store.ErrEmptyTitle) {
		respondWithError(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	task, ok := h.store.ToggleComplete(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.store.Delete(id) {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetFilter(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondWithJSON(w, http.StatusOK, filterPayload{Filter: h.store.Filter()})
}

// SetFilter never rejects a name; unknown ones select "all".
func (h *Handlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filter string `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	respondWithJSON(w, http.StatusOK, filterPayload{Filter: h.store.SetFilter(req.Filter)})
}

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondWithJSON(w, http.StatusOK, h.store.Stats())
}

// GetNotification returns the banner on display, or 204 when there is none.
func (h *Handlers) GetNotification(w http.ResponseWriter, r *http.Request) {
	if h.banner == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	n, ok := h.banner.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, n)
}

func parseDue(s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
