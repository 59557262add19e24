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

// Package session manages per-conversation state for the travel agent.
//
// A session threads multiple request/response cycles into one logical
// conversation. Each session has:
//   - An opaque identifier (caller-correlated, or generated when absent)
//   - An ordered message history of {role, text} turns
//   - Extracted trip attributes (destination, budget, duration, ...)
//     merged last-write-wins across turns
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// ErrSessionNotFound is returned when a session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// Turn is one {role, text} entry in a session's message history.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a read view of one conversation's accumulated state.
// Accessors return copies; mutation goes through the Service.
type Session interface {
	// ID returns the opaque session identifier.
	ID() string

	// History returns the message history in insertion order.
	History() []Turn

	// Attributes returns the extracted trip attributes.
	Attributes() map[string]any

	// CreatedAt returns when the session was first resolved.
	CreatedAt() time.Time
}

// Service manages conversation session lifecycle.
//
// All mutation is atomic with respect to a single session id: turns
// recorded for one session apply in arrival order, while distinct
// sessions proceed fully in parallel.
type Service interface {
	// Resolve returns the session for the given id, creating an empty
	// one when the id is unknown. An empty id allocates a session under
	// a freshly generated unique id.
	Resolve(ctx context.Context, sessionID string) (Session, error)

	// RecordTurn appends a {role, text} turn to the session history.
	RecordTurn(ctx context.Context, sessionID, role, text string) error

	// MergeAttributes merges attributes into the session, last write wins.
	MergeAttributes(ctx context.Context, sessionID string, attrs map[string]any) error

	// Reset clears the session's history and attributes. The id mapping
	// is retained, so a later Resolve with the same id returns the same
	// session, emptied. Resetting an unknown id is a no-op.
	Reset(ctx context.Context, sessionID string) error
}

// memorySession is an in-memory Session implementation.
// Its own mutex serializes mutation per session id.
type memorySession struct {
	id        string
	createdAt time.Time

	mu         sync.RWMutex
	history    []Turn
	attributes map[string]any
}

func newMemorySession(id string) *memorySession {
	return &memorySession{
		id:         id,
		createdAt:  time.Now(),
		attributes: make(map[string]any),
	}
}

func (s *memorySession) ID() string           { return s.id }
func (s *memorySession) CreatedAt() time.Time { return s.createdAt }

func (s *memorySession) History() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Turn(nil), s.history...)
}

func (s *memorySession) Attributes() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs := make(map[string]any, len(s.attributes))
	for k, v := range s.attributes {
		attrs[k] = v
	}
	return attrs
}

func (s *memorySession) recordTurn(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Turn{Role: role, Text: text, Timestamp: time.Now()})
}

func (s *memorySession) mergeAttributes(attrs map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range attrs {
		s.attributes[k] = v
	}
}

func (s *memorySession) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.attributes = make(map[string]any)
}

// InMemoryService returns an in-memory session service.
// Sessions live for the lifetime of the process.
func InMemoryService() Service {
	return &inMemoryService{
		sessions: make(map[string]*memorySession),
	}
}

type inMemoryService struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

func (s *inMemoryService) Resolve(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.RLock()
	existing, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return existing, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sessionID]; ok {
		return existing, nil
	}
	created := newMemorySession(sessionID)
	s.sessions[sessionID] = created
	return created, nil
}

func (s *inMemoryService) RecordTurn(ctx context.Context, sessionID, role, text string) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	session.recordTurn(role, text)
	return nil
}

func (s *inMemoryService) MergeAttributes(ctx context.Context, sessionID string, attrs map[string]any) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	session.mergeAttributes(attrs)
	return nil
}

func (s *inMemoryService) Reset(ctx context.Context, sessionID string) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	session.reset()
	return nil
}

func (s *inMemoryService) lookup(sessionID string) (*memorySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

var (
	_ Session = (*memorySession)(nil)
	_ Service = (*inMemoryService)(nil)
)
