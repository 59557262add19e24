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

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAIBaseURL = "https://api.openai.com/v1"

	// Conversation history is trimmed to this many trailing messages
	// before each completion call.
	maxHistoryMessages = 18
)

const systemPrompt = `You are an expert travel agent with extensive knowledge of destinations worldwide.
Your role is to help users plan amazing trips by providing personalized recommendations, detailed itineraries,
and comprehensive travel advice.

When a user mentions a destination, gather their origin city, travel dates or duration, number of travelers,
total budget per person in USD, interests, accommodation preference, and pace preference in one message.
Once the user answers, immediately present a complete budget breakdown (flights, accommodation, activities,
food, local transportation, and a 10% miscellaneous buffer) plus a day-by-day itinerary. Only update the plan
when the user asks for changes, and clearly show what changed. When the user confirms, present a final trip
summary with a booking checklist.

Rules:
- Never give blank responses
- Show budgets in a clear table format with totals
- Always show per-person costs in USD`

// ChatMessage is one turn of an AI conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIClient calls an OpenAI-compatible chat completions API.
type AIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewAIClient creates a client. An empty base URL targets the OpenAI
// API; timeout bounds each completion call.
func NewAIClient(apiKey, baseURL, model string, timeout time.Duration) *AIClient {
	if baseURL == "" {
		baseURL = defaultAIBaseURL
	}
	return &AIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete generates an AI reply to the user message, given prior
// conversation history and the accumulated trip context.
func (c *AIClient) Complete(ctx context.Context, message string, history []ChatMessage, trip TripContext) (string, error) {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt})

	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	messages = append(messages, history...)

	content := message
	if contextNote := formatTripContext(trip); contextNote != "" {
		content = message + "\n\nContext: " + contextNote
	}
	messages = append(messages, ChatMessage{Role: "user", Content: content})

	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("completion API error: %s", completion.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion API returned no content")
	}

	return completion.Choices[0].Message.Content, nil
}

func formatTripContext(trip TripContext) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+": "+value)
		}
	}
	add("destination", trip.Destination)
	add("origin", trip.Origin)
	if trip.Budget > 0 {
		parts = append(parts, fmt.Sprintf("budget: $%.0f", trip.Budget))
	}
	add("budget level", trip.BudgetLevel)
	if trip.Duration > 0 {
		parts = append(parts, fmt.Sprintf("duration: %d days", trip.Duration))
	}
	if trip.Travelers > 0 {
		parts = append(parts, fmt.Sprintf("travelers: %d", trip.Travelers))
	}
	add("accommodation", trip.Accommodation)
	add("local transport", trip.Transport)
	if len(trip.Interests) > 0 {
		parts = append(parts, "interests: "+strings.Join(trip.Interests, ", "))
	}
	return strings.Join(parts, ", ")
}
