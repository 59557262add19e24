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

// Package server exposes the travel agent over the A2A protocol: an
// AgentExecutor bridging tasks to the agent, the agent card, and the
// HTTP server wiring.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"github.com/SasiVeeramachaneni/travelagent-a2a/agent"
	"github.com/SasiVeeramachaneni/travelagent-a2a/session"
)

const (
	processingMessage   = "Processing your travel request..."
	emptyInputMessage   = "I didn't receive a message. Please send your travel question or request."
	cancelledMessage    = "Request cancelled."
	defaultReplyTimeout = 60 * time.Second
)

// ExecutorConfig configures the A2A executor.
type ExecutorConfig struct {
	// Agent produces replies.
	Agent *agent.Agent

	// Sessions stores per-conversation history and trip context.
	Sessions session.Service

	// ReplyTimeout bounds one reply generation. Zero applies a default.
	ReplyTimeout time.Duration
}

// Executor implements a2asrv.AgentExecutor for the travel agent.
//
// Task lifecycle:
//   - New task: TaskStateSubmitted
//   - Before reply generation: TaskStateWorking
//   - Empty input: TaskStateCompleted with a clarifying message
//   - Reply generated: TaskStateCompleted with the reply
//   - Business error or timeout: TaskStateFailed with the reason
//   - Cancel: TaskStateCanceled, a no-op for already-terminal tasks
type Executor struct {
	agent    *agent.Agent
	sessions session.Service
	timeout  time.Duration
}

// NewExecutor creates an executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	timeout := cfg.ReplyTimeout
	if timeout <= 0 {
		timeout = defaultReplyTimeout
	}
	return &Executor{
		agent:    cfg.Agent,
		sessions: cfg.Sessions,
		timeout:  timeout,
	}
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	if reqCtx.StoredTask == nil {
		event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)
		if err := queue.Write(ctx, event); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	workingMsg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: processingMessage})
	if err := queue.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, workingMsg)); err != nil {
		return fmt.Errorf("failed to write working event: %w", err)
	}

	input := textFromMessage(reqCtx.Message)
	if input == "" {
		return e.writeCompleted(ctx, reqCtx, queue, emptyInputMessage)
	}

	reply, err := e.generateReply(ctx, string(reqCtx.ContextID), input)
	if err != nil {
		slog.Error("Task failed", "taskId", reqCtx.TaskID, "error", err)
		reason := fmt.Sprintf("I encountered an error processing your request: %v", err)
		return e.writeFailed(ctx, reqCtx, queue, reason)
	}

	slog.Info("Task completed", "taskId", reqCtx.TaskID, "contextId", reqCtx.ContextID)
	return e.writeCompleted(ctx, reqCtx, queue, reply)
}

// generateReply loads session state, produces a reply, and records the
// exchange. The reply generation itself runs without any session lock
// held; only the snapshot and the writes touch the session.
func (e *Executor) generateReply(ctx context.Context, sessionID, input string) (string, error) {
	sess, err := e.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	sessionID = sess.ID()

	history := toChatHistory(sess.History())
	trip := agent.ContextFromAttributes(sess.Attributes())

	if err := e.sessions.RecordTurn(ctx, sessionID, session.RoleUser, input); err != nil {
		return "", fmt.Errorf("failed to record user turn: %w", err)
	}

	replyCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reply, updated, err := e.agent.Respond(replyCtx, input, history, trip)
	if err != nil {
		return "", err
	}

	if err := e.sessions.MergeAttributes(ctx, sessionID, updated.ToAttributes()); err != nil {
		return "", fmt.Errorf("failed to merge trip context: %w", err)
	}
	if err := e.sessions.RecordTurn(ctx, sessionID, session.RoleAgent, reply); err != nil {
		return "", fmt.Errorf("failed to record agent turn: %w", err)
	}

	return reply, nil
}

// Cancel implements a2asrv.AgentExecutor. Cancelling a task that has
// already reached a terminal state is a no-op.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	if reqCtx.StoredTask != nil && isTerminal(reqCtx.StoredTask.Status.State) {
		slog.Debug("Cancel ignored for terminal task",
			"taskId", reqCtx.TaskID, "state", reqCtx.StoredTask.Status.State)
		return nil
	}

	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: cancelledMessage})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, msg)
	event.Final = true
	return queue.Write(ctx, event)
}

func (e *Executor) writeCompleted(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue, text string) error {
	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: text})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, msg)
	event.Final = true
	if err := queue.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write completed event: %w", err)
	}
	return nil
}

func (e *Executor) writeFailed(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue, reason string) error {
	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: reason})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
	event.Final = true
	if err := queue.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write failed event: %w", err)
	}
	return nil
}

func isTerminal(state a2a.TaskState) bool {
	switch state {
	case a2a.TaskStateCompleted, a2a.TaskStateFailed, a2a.TaskStateCanceled:
		return true
	}
	return false
}

var _ a2asrv.AgentExecutor = (*Executor)(nil)
