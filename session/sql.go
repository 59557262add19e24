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

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	// SQL drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLService implements Service using a SQL database, so sessions
// survive process restarts and can be shared across instances.
// Mutations for one session serialize on a row lock of the session
// record; sqlite relies on its single-writer transaction locking.
type SQLService struct {
	db      *sql.DB
	dialect string
}

// Schema creation SQL
const createSessionsSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id VARCHAR(255) PRIMARY KEY,
    attributes_json TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

const createTurnsSchemaSQL = `
CREATE TABLE IF NOT EXISTS session_turns (
    session_id VARCHAR(255) NOT NULL,
    sequence_num INTEGER NOT NULL,
    role VARCHAR(50) NOT NULL,
    text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, sequence_num)
)`

// NewSQLService creates a SQL-backed session service.
func NewSQLService(db *sql.DB, dialect string) (*SQLService, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	switch dialect {
	case "postgres", "mysql", "sqlite", "sqlite3":
		if dialect == "sqlite3" {
			dialect = "sqlite"
		}
	default:
		return nil, fmt.Errorf("unsupported dialect: %s (supported: postgres, mysql, sqlite)", dialect)
	}

	s := &SQLService{
		db:      db,
		dialect: dialect,
	}

	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the required tables if they don't exist.
func (s *SQLService) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Execute each statement separately for SQLite compatibility
	for _, stmt := range []string{createSessionsSchemaSQL, createTurnsSchemaSQL} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLService) Close() error {
	return s.db.Close()
}

func (s *SQLService) Resolve(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, err := s.getSession(ctx, sessionID)
	if err == nil {
		return session, nil
	}
	if err != ErrSessionNotFound {
		return nil, err
	}

	now := time.Now()
	query := s.placeholders(`INSERT INTO sessions (id, attributes_json, created_at, updated_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, sessionID, "{}", now, now); err != nil {
		// A concurrent Resolve may have inserted the same id first.
		if existing, getErr := s.getSession(ctx, sessionID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &sqlSession{id: sessionID, createdAt: now, attributes: map[string]any{}}, nil
}

func (s *SQLService) RecordTurn(ctx context.Context, sessionID, role, text string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.lockSessionTx(ctx, tx, sessionID); err != nil {
		return err
	}

	var next int
	seqQuery := s.placeholders(`SELECT COALESCE(MAX(sequence_num), 0) + 1 FROM session_turns WHERE session_id = ?`)
	if err := tx.QueryRowContext(ctx, seqQuery, sessionID).Scan(&next); err != nil {
		return fmt.Errorf("failed to get next sequence number: %w", err)
	}

	now := time.Now()
	insertQuery := s.placeholders(`INSERT INTO session_turns (session_id, sequence_num, role, text, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insertQuery, sessionID, next, role, text, now); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}

	if err := s.touchSessionTx(ctx, tx, sessionID, now); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLService) MergeAttributes(ctx context.Context, sessionID string, attrs map[string]any) error {
	if len(attrs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var attributesJSON string
	selectQuery := s.placeholders(`SELECT attributes_json FROM sessions WHERE id = ?`)
	if err := tx.QueryRowContext(ctx, selectQuery, sessionID).Scan(&attributesJSON); err != nil {
		if err == sql.ErrNoRows {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to load session attributes: %w", err)
	}

	merged := make(map[string]any)
	if err := json.Unmarshal([]byte(attributesJSON), &merged); err != nil {
		return fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	for k, v := range attrs {
		merged[k] = v
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	updateQuery := s.placeholders(`UPDATE sessions SET attributes_json = ?, updated_at = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, updateQuery, string(mergedJSON), time.Now(), sessionID); err != nil {
		return fmt.Errorf("failed to update attributes: %w", err)
	}

	return tx.Commit()
}

func (s *SQLService) Reset(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := s.placeholders(`DELETE FROM session_turns WHERE session_id = ?`)
	if _, err := tx.ExecContext(ctx, deleteQuery, sessionID); err != nil {
		return fmt.Errorf("failed to delete turns: %w", err)
	}

	// Unknown ids update zero rows, which keeps Reset a no-op for them.
	updateQuery := s.placeholders(`UPDATE sessions SET attributes_json = ?, updated_at = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, updateQuery, "{}", time.Now(), sessionID); err != nil {
		return fmt.Errorf("failed to reset attributes: %w", err)
	}

	return tx.Commit()
}

// getSession loads a session row and its turns.
func (s *SQLService) getSession(ctx context.Context, sessionID string) (*sqlSession, error) {
	var attributesJSON string
	var createdAt time.Time
	query := s.placeholders(`SELECT attributes_json, created_at FROM sessions WHERE id = ?`)
	if err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&attributesJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	attributes := make(map[string]any)
	if err := json.Unmarshal([]byte(attributesJSON), &attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}

	turnsQuery := s.placeholders(`SELECT role, text, created_at FROM session_turns WHERE session_id = ? ORDER BY sequence_num`)
	rows, err := s.db.QueryContext(ctx, turnsQuery, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	var history []Turn
	for rows.Next() {
		var turn Turn
		if err := rows.Scan(&turn.Role, &turn.Text, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		history = append(history, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}

	return &sqlSession{
		id:         sessionID,
		createdAt:  createdAt,
		history:    history,
		attributes: attributes,
	}, nil
}

// lockSessionTx verifies the session exists and takes a row lock on
// it, so concurrent writers for the same session serialize and
// MAX(sequence_num)+1 stays unique under postgres/mysql default
// isolation. SQLite has no FOR UPDATE; its single-writer locking
// already serializes write transactions.
func (s *SQLService) lockSessionTx(ctx context.Context, tx *sql.Tx, sessionID string) error {
	query := `SELECT 1 FROM sessions WHERE id = ?`
	if s.dialect != "sqlite" {
		query += ` FOR UPDATE`
	}
	var exists int
	if err := tx.QueryRowContext(ctx, s.placeholders(query), sessionID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to lock session: %w", err)
	}
	return nil
}

func (s *SQLService) touchSessionTx(ctx context.Context, tx *sql.Tx, sessionID string, now time.Time) error {
	query := s.placeholders(`UPDATE sessions SET updated_at = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, now, sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// placeholders rewrites ? placeholders for the postgres dialect.
func (s *SQLService) placeholders(query string) string {
	if s.dialect != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 20)
	paramNum := 1
	for _, c := range query {
		if c == '?' {
			b.WriteString(fmt.Sprintf("$%d", paramNum))
			paramNum++
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sqlSession is a detached snapshot of a session row.
type sqlSession struct {
	id         string
	createdAt  time.Time
	history    []Turn
	attributes map[string]any
}

func (s *sqlSession) ID() string           { return s.id }
func (s *sqlSession) CreatedAt() time.Time { return s.createdAt }

func (s *sqlSession) History() []Turn {
	return append([]Turn(nil), s.history...)
}

func (s *sqlSession) Attributes() map[string]any {
	attrs := make(map[string]any, len(s.attributes))
	for k, v := range s.attributes {
		attrs[k] = v
	}
	return attrs
}

var (
	_ Session = (*sqlSession)(nil)
	_ Service = (*SQLService)(nil)
)
