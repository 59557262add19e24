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

// Package agent implements the travel planning brain: intent parsing,
// trip context extraction, rule-based responders, and an optional
// AI-backed completion path.
package agent

import (
	"context"
	"fmt"
	"log/slog"
)

// Agent answers travel questions. It is stateless; conversation state
// arrives through the TripContext the caller accumulates per session.
type Agent struct {
	ai *AIClient
}

// New creates an agent. Pass a nil AI client to run rule-based only.
func New(ai *AIClient) *Agent {
	return &Agent{ai: ai}
}

// AIEnabled reports whether the AI completion path is active.
func (a *Agent) AIEnabled() bool {
	return a.ai != nil
}

// Respond generates a reply to a user message. It merges details from
// the message into the trip context and returns the updated context
// alongside the reply. AI failures fall back to the rule-based path.
func (a *Agent) Respond(ctx context.Context, message string, history []ChatMessage, trip TripContext) (string, TripContext, error) {
	updated := ExtractContext(message, trip)

	if a.ai != nil {
		reply, err := a.ai.Complete(ctx, message, history, updated)
		if err == nil {
			return reply, updated, nil
		}
		if ctx.Err() != nil {
			return "", updated, ctx.Err()
		}
		slog.Warn("AI completion failed, using rule-based response", "error", err)
	}

	return a.respondRuleBased(message, updated), updated, nil
}

func (a *Agent) respondRuleBased(message string, trip TripContext) string {
	switch ParseIntent(message) {
	case IntentPlanTrip:
		return a.handleTripPlanning(trip)
	case IntentRecommendations:
		return a.handleRecommendations(trip)
	case IntentItinerary:
		return a.handleItinerary(trip)
	case IntentBudget:
		return a.handleBudget(trip)
	case IntentBooking:
		return BookingGuidance()
	case IntentTravelSupport:
		return a.handleTravelSupport(trip)
	default:
		return askClarifyingQuestion(trip)
	}
}

func (a *Agent) handleTripPlanning(trip TripContext) string {
	if missing := missingEssentials(trip); len(missing) > 0 {
		return askForInformation(missing[0])
	}
	rec, ok := GenerateRecommendations(trip)
	if !ok {
		return fmt.Sprintf("I'd love to help you explore %s! Let me research the best options for you.", trip.Destination)
	}
	return FormatRecommendations(rec)
}

func (a *Agent) handleRecommendations(trip TripContext) string {
	if trip.Destination == "" {
		return "I'd love to help you with recommendations! Where are you planning to travel?"
	}
	rec, ok := GenerateRecommendations(trip)
	if !ok {
		return fmt.Sprintf("I'd love to help you explore %s! Let me research the best options for you.", trip.Destination)
	}
	return FormatRecommendations(rec)
}

func (a *Agent) handleItinerary(trip TripContext) string {
	if !trip.HasMinimumTripInfo() {
		return askClarifyingQuestion(trip)
	}
	return FormatItinerary(CreateItinerary(trip))
}

func (a *Agent) handleBudget(trip TripContext) string {
	if !trip.HasMinimumTripInfo() {
		return "To calculate your trip budget, I need some basic information. " + askClarifyingQuestion(trip)
	}
	return FormatBudget(CalculateBudget(trip), trip.Budget)
}

func (a *Agent) handleTravelSupport(trip TripContext) string {
	if trip.Destination == "" {
		return "I can help with travel support! Which destination do you need information about?"
	}
	info, ok := TravelSupportInfo(trip.Destination)
	if !ok {
		return "Please provide more details about your destination."
	}
	return info
}

// Essential fields asked for first, in order.
func missingEssentials(trip TripContext) []string {
	var missing []string
	if trip.Destination == "" {
		missing = append(missing, "destination")
	}
	if trip.Duration <= 0 {
		missing = append(missing, "duration")
	}
	if trip.Budget <= 0 && trip.BudgetLevel == "" {
		missing = append(missing, "budget")
	}
	return missing
}

var informationQuestions = map[string]string{
	"destination": "Where would you like to travel to?",
	"origin":      "Where will you be traveling from? (City/Airport)",
	"duration":    "How many days do you have for this trip?",
	"budget": "What's your budget for this trip?\n" +
		"You can tell me:\n" +
		"  - A specific amount (e.g., '$5000')\n" +
		"  - A budget level: budget-friendly, moderate, or luxury",
	"travelers": "How many people will be traveling?",
	"interests": "What types of activities interest you most?\n" +
		"For example: culture, adventure, food, relaxation, nightlife, shopping",
}

func askForInformation(field string) string {
	if question, ok := informationQuestions[field]; ok {
		return question
	}
	return fmt.Sprintf("Could you please provide information about %s?", field)
}

func askClarifyingQuestion(trip TripContext) string {
	if missing := missingEssentials(trip); len(missing) > 0 {
		return askForInformation(missing[0])
	}
	return "I'd love to help! Could you tell me more about what you're looking for?"
}
