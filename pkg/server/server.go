// Package server exposes a task store over HTTP: a JSON API under /api and
// a server-rendered page at /.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrisonrobin/taskflow/pkg/notify"
	"github.com/harrisonrobin/taskflow/pkg/store"
)

// Handlers serializes every request through one mutex so the store sees a
// single caller at a time.
type Handlers struct {
	mu     sync.Mutex
	store  *store.Store
	banner *notify.Banner
}

// NewHandlers wraps s. banner may be nil; when set it should be the
// notifier the store was built with so the page can show the latest message.
func NewHandlers(s *store.Store, banner *notify.Banner) *Handlers {
	return &Handlers{store: s, banner: banner}
}

// Router wires every route.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/toggle", h.ToggleTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/filter", h.GetFilter).Methods(http.MethodGet)
	api.HandleFunc("/filter", h.SetFilter).Methods(http.MethodPut)
	api.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/notification", h.GetNotification).Methods(http.MethodGet)

	r.HandleFunc("/", h.Page).Methods(http.MethodGet)
	r.HandleFunc("/tasks", h.PageCreate).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}/toggle", h.PageToggle).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}/delete", h.PageDelete).Methods(http.MethodPost)
	return r
}

// NewServer returns an http.Server for addr.
func NewServer(addr string, h *Handlers) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
