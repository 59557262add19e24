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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"I want to plan a trip to Paris", IntentPlanTrip},
		{"We are going to Tokyo next month", IntentPlanTrip},
		{"Can you recommend things in Rome?", IntentRecommendations},
		{"What should I see there?", IntentRecommendations},
		{"Give me a day by day schedule", IntentItinerary},
		{"How much does a week in Tokyo cost?", IntentBudget},
		{"Help me book a hotel", IntentBooking},
		{"Do I need a visa for Japan?", IntentTravelSupport},
		{"Hello!", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.message))
		})
	}
}

func TestExtractContext(t *testing.T) {
	trip := ExtractContext("Plan a 7 days trip to Paris from London for 2 people with a budget of $5,000. We love museums and food.", TripContext{})

	assert.Equal(t, "Paris", trip.Destination)
	assert.Equal(t, "London", trip.Origin)
	assert.Equal(t, 7, trip.Duration)
	assert.Equal(t, 2, trip.Travelers)
	assert.Equal(t, 5000.0, trip.Budget)
	assert.Contains(t, trip.Interests, "culture")
	assert.Contains(t, trip.Interests, "food")
}

func TestExtractContext_Durations(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"a 10 day trip", 10},
		{"2 weeks in tokyo", 14},
		{"staying 4 nights", 5},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			trip := ExtractContext(tt.message, TripContext{})
			assert.Equal(t, tt.want, trip.Duration)
		})
	}
}

func TestExtractContext_PreservesPriorValues(t *testing.T) {
	prior := TripContext{Destination: "Tokyo", Duration: 5, Interests: []string{"food"}}
	trip := ExtractContext("make it a luxury trip with a resort", prior)

	assert.Equal(t, "Tokyo", trip.Destination)
	assert.Equal(t, 5, trip.Duration)
	assert.Equal(t, "luxury", trip.BudgetLevel)
	assert.Equal(t, "resort", trip.Accommodation)
	assert.Contains(t, trip.Interests, "food")
}

func TestExtractContext_BudgetLevels(t *testing.T) {
	assert.Equal(t, "budget", ExtractContext("something cheap please", TripContext{}).BudgetLevel)
	assert.Equal(t, "moderate", ExtractContext("mid-range is fine", TripContext{}).BudgetLevel)
	assert.Equal(t, "luxury", ExtractContext("premium all the way", TripContext{}).BudgetLevel)
}

func TestAttributesRoundTrip(t *testing.T) {
	trip := TripContext{
		Destination: "Paris",
		Origin:      "London",
		Budget:      5000,
		Duration:    7,
		Travelers:   2,
		Interests:   []string{"culture", "food"},
	}

	restored := ContextFromAttributes(trip.ToAttributes())
	assert.Equal(t, trip, restored)
}

func TestContextFromAttributes_JSONNumbers(t *testing.T) {
	// After a JSON round trip numbers arrive as float64 and string
	// slices as []any.
	attrs := map[string]any{
		"destination": "Tokyo",
		"duration":    float64(5),
		"travelers":   float64(3),
		"interests":   []any{"food", "culture"},
	}

	trip := ContextFromAttributes(attrs)
	assert.Equal(t, "Tokyo", trip.Destination)
	assert.Equal(t, 5, trip.Duration)
	assert.Equal(t, 3, trip.Travelers)
	assert.Equal(t, []string{"food", "culture"}, trip.Interests)
}
