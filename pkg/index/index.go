// Package index maps task ids to the calendar events that mirror them.
package index

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const fileVersion = 1

// Link ties a task to its event.
type Link struct {
	TaskID  int64  `json:"taskId"`
	EventID string `json:"eventId"`
}

type fileLayout struct {
	Version    int    `json:"version"`
	CalendarID string `json:"calendarId"`
	Events     []Link `json:"events"`
}

// EventIndex remembers which event mirrors which task in one calendar.
// Links recorded for another calendar are discarded by Bind.
type EventIndex struct {
	path       string
	calendarID string
	events     map[int64]string
	mu         sync.RWMutex
	dirty      bool
}

func NewEventIndex(path string) (*EventIndex, error) {
	idx := &EventIndex{path: path, events: make(map[int64]string)}
	if err := idx.Load(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Load replaces the in-memory links with the file contents. A missing file
// leaves the index empty.
func (idx *EventIndex) Load() error {
	data, err := os.ReadFile(idx.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return fmt.Errorf("failed to decode event index %s: %w", idx.path, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.calendarID = layout.CalendarID
	idx.events = make(map[int64]string, len(layout.Events))
	for _, l := range layout.Events {
		if l.EventID != "" {
			idx.events[l.TaskID] = l.EventID
		}
	}
	idx.dirty = false
	return nil
}

// Save writes the index if it changed since the last Load or Save.
func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	layout := fileLayout{Version: fileVersion, CalendarID: idx.calendarID, Events: idx.linksLocked()}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(idx.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

// Bind scopes the index to calendarID. When the links were recorded for a
// different calendar they are dropped, since their event ids mean nothing
// there.
func (idx *EventIndex) Bind(calendarID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.calendarID == calendarID {
		return
	}
	if idx.calendarID != "" && len(idx.events) > 0 {
		log.Printf("Calendar changed from %s to %s, forgetting %d event links", idx.calendarID, calendarID, len(idx.events))
		idx.events = make(map[int64]string)
	}
	idx.calendarID = calendarID
	idx.dirty = true
}

func (idx *EventIndex) CalendarID() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.calendarID
}

func (idx *EventIndex) Get(taskID int64) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.events[taskID]
}

func (idx *EventIndex) Set(taskID int64, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if eventID == "" || idx.events[taskID] == eventID {
		return
	}
	idx.events[taskID] = eventID
	idx.dirty = true
}

func (idx *EventIndex) Remove(taskID int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.events[taskID]; ok {
		delete(idx.events, taskID)
		idx.dirty = true
	}
}

// Orphans returns the links whose task is not in live, ordered by task id.
func (idx *EventIndex) Orphans(live map[int64]bool) []Link {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var out []Link
	for _, l := range idx.linksLocked() {
		if !live[l.TaskID] {
			out = append(out, l)
		}
	}
	return out
}

// Links returns every link ordered by task id.
func (idx *EventIndex) Links() []Link {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.linksLocked()
}

func (idx *EventIndex) linksLocked() []Link {
	links := make([]Link, 0, len(idx.events))
	for id, ev := range idx.events {
		links = append(links, Link{TaskID: id, EventID: ev})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].TaskID < links[j].TaskID })
	return links
}
