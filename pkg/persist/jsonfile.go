package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

type fileLayout struct {
	Version int          `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// JSONFile stores the task list as one indented JSON document.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load returns the saved tasks, or nothing if the file does not exist yet.
func (j *JSONFile) Load() ([]model.Task, error) {
	f, err := os.Open(j.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var layout fileLayout
	if err := json.NewDecoder(f).Decode(&layout); err != nil {
		return nil, fmt.Errorf("failed to decode task file %s: %w", j.Path, err)
	}
	for i := range layout.Tasks {
		t := &layout.Tasks[i]
		t.Priority = model.ParsePriority(string(t.Priority))
		if !t.HasDueDate() {
			t.DueDate = nil
		}
	}
	return layout.Tasks, nil
}

// Save replaces the file atomically with the given tasks.
func (j *JSONFile) Save(tasks []model.Task) error {
	dir := filepath.Dir(j.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fileLayout{Version: 1, Tasks: tasks}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), j.Path)
}

func (j *JSONFile) Close() error { return nil }
