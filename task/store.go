// Copyright 2025 Sasi Veeramachaneni
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package task provides durable storage for A2A task state.
package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	// SQL drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore implements a2asrv.TaskStore on a SQL database so task
// status survives restarts. A task row stores the protocol task as
// JSON columns keyed by task id.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

type taskRow struct {
	ID          string
	ContextID   string
	StatusJSON  string
	HistoryJSON string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Table and indexes are created as separate statements for SQLite
// compatibility.
const createTasksTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id VARCHAR(255) PRIMARY KEY,
    context_id VARCHAR(255) NOT NULL,
    status_json TEXT NOT NULL,
    history_json TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

const createTasksContextIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_tasks_context_id ON tasks(context_id)`

// NewSQLStore creates a SQL-backed TaskStore. The db connection should
// be shared with other services on the same database to avoid SQLite
// "database is locked" errors.
func NewSQLStore(db *sql.DB, dialect string) (a2asrv.TaskStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if dialect == "sqlite3" {
		dialect = "sqlite"
	}
	switch dialect {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported dialect: %s (supported: postgres, mysql, sqlite)", dialect)
	}

	s := &SQLStore{
		db:      db,
		dialect: dialect,
	}

	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLStore) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTasksTableSQL); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createTasksContextIndexSQL); err != nil {
		return fmt.Errorf("failed to create context index: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save upserts a task.
func (s *SQLStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	row, err := taskToRow(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}

	var query string
	switch s.dialect {
	case "postgres":
		query = `
INSERT INTO tasks (id, context_id, status_json, history_json, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    context_id = EXCLUDED.context_id,
    status_json = EXCLUDED.status_json,
    history_json = EXCLUDED.history_json,
    updated_at = EXCLUDED.updated_at`
	case "mysql":
		query = `
INSERT INTO tasks (id, context_id, status_json, history_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    context_id = VALUES(context_id),
    status_json = VALUES(status_json),
    history_json = VALUES(history_json),
    updated_at = VALUES(updated_at)`
	default:
		// SQLite 3.24+ upsert preserves created_at on update.
		query = `
INSERT INTO tasks (id, context_id, status_json, history_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    context_id = excluded.context_id,
    status_json = excluded.status_json,
    history_json = excluded.history_json,
    updated_at = excluded.updated_at`
	}

	_, err = s.db.ExecContext(ctx, query,
		row.ID, row.ContextID, row.StatusJSON, row.HistoryJSON, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Get retrieves a task by id.
func (s *SQLStore) Get(ctx context.Context, taskID a2a.TaskID) (*a2a.Task, error) {
	query := `SELECT id, context_id, status_json, history_json, created_at, updated_at FROM tasks WHERE id = ?`
	if s.dialect == "postgres" {
		query = `SELECT id, context_id, status_json, history_json, created_at, updated_at FROM tasks WHERE id = $1`
	}

	var row taskRow
	err := s.db.QueryRowContext(ctx, query, string(taskID)).Scan(
		&row.ID, &row.ContextID, &row.StatusJSON, &row.HistoryJSON,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, a2a.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	return rowToTask(&row)
}

func taskToRow(task *a2a.Task) (*taskRow, error) {
	statusJSON, err := json.Marshal(task.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	historyJSON := []byte("[]")
	if len(task.History) > 0 {
		historyJSON, err = json.Marshal(task.History)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history: %w", err)
		}
	}

	now := time.Now()
	return &taskRow{
		ID:          string(task.ID),
		ContextID:   task.ContextID,
		StatusJSON:  string(statusJSON),
		HistoryJSON: string(historyJSON),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func rowToTask(row *taskRow) (*a2a.Task, error) {
	task := &a2a.Task{
		ID:        a2a.TaskID(row.ID),
		ContextID: row.ContextID,
		History:   make([]*a2a.Message, 0),
	}

	if row.StatusJSON == "" {
		return nil, fmt.Errorf("status_json is required but was empty")
	}
	if err := json.Unmarshal([]byte(row.StatusJSON), &task.Status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	if row.HistoryJSON != "" && row.HistoryJSON != "[]" {
		if err := json.Unmarshal([]byte(row.HistoryJSON), &task.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}
	}

	return task, nil
}

var _ a2asrv.TaskStore = (*SQLStore)(nil)
