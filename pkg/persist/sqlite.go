package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY,
	position     INTEGER NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	priority     TEXT NOT NULL DEFAULT 'medium',
	due_date     TEXT,
	completed    INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL,
	completed_at TEXT
);`

// SQLite keeps the task list in a single table. Each save rewrites the
// table inside one transaction.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load() ([]model.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, priority, due_date, completed, created_at, completed_at
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load query failed: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var priority, createdAt string
		var dueDate, completedAt sql.NullString

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &priority, &dueDate,
			&t.Completed, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		t.Priority = model.ParsePriority(priority)

		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("task %d has invalid created_at: %w", t.ID, err)
		}
		if dueDate.Valid && dueDate.String != "" {
			d, err := model.ParseDate(dueDate.String)
			if err != nil {
				return nil, fmt.Errorf("task %d: %w", t.ID, err)
			}
			t.DueDate = &d
		}
		if completedAt.Valid && completedAt.String != "" {
			ts, err := time.Parse(time.RFC3339Nano, completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("task %d has invalid completed_at: %w", t.ID, err)
			}
			t.CompletedAt = &ts
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLite) Save(tasks []model.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (id, position, title, description, priority, due_date, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		var due, completedAt sql.NullString
		if t.HasDueDate() {
			due = sql.NullString{String: t.DueDate.String(), Valid: true}
		}
		if t.CompletedAt != nil {
			completedAt = sql.NullString{String: t.CompletedAt.Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := stmt.Exec(t.ID, i, t.Title, t.Description, string(t.Priority), due,
			t.Completed, t.CreatedAt.Format(time.RFC3339Nano), completedAt); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}
