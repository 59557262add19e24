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

import "strings"

// Intent classifies what a user message is asking for.
type Intent string

const (
	IntentPlanTrip        Intent = "plan_trip"
	IntentRecommendations Intent = "get_recommendations"
	IntentItinerary       Intent = "create_itinerary"
	IntentBudget          Intent = "calculate_budget"
	IntentBooking         Intent = "booking_assistance"
	IntentTravelSupport   Intent = "travel_support"
	IntentGeneral         Intent = "general_inquiry"
)

// Keyword groups checked in order. The first matching group wins, so
// "plan a trip to paris on a budget" classifies as trip planning.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentPlanTrip, []string{"plan", "planning", "trip to", "visit", "going to"}},
	{IntentRecommendations, []string{"recommend", "suggest", "what to do", "what should"}},
	{IntentItinerary, []string{"itinerary", "schedule", "day by day", "daily plan"}},
	{IntentBudget, []string{"budget", "cost", "price", "how much", "expensive"}},
	{IntentBooking, []string{"book", "booking", "reserve", "reservation"}},
	{IntentTravelSupport, []string{"visa", "passport", "insurance", "safety", "emergency"}},
}

// ParseIntent determines the intent of a user message.
func ParseIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, group := range intentKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.intent
			}
		}
	}
	return IntentGeneral
}
