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

package server

import (
	"strings"

	"github.com/a2aproject/a2a-go/a2a"

	"github.com/SasiVeeramachaneni/travelagent-a2a/agent"
	"github.com/SasiVeeramachaneni/travelagent-a2a/session"
)

// textFromMessage joins the text parts of an A2A message in order,
// space-separated and trimmed. Non-text parts are ignored.
func textFromMessage(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}
	var texts []string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok && strings.TrimSpace(tp.Text) != "" {
			texts = append(texts, tp.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// toChatHistory converts session turns to AI chat messages.
func toChatHistory(turns []session.Turn) []agent.ChatMessage {
	history := make([]agent.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == session.RoleAgent {
			role = "assistant"
		}
		history = append(history, agent.ChatMessage{Role: role, Content: turn.Text})
	}
	return history
}
