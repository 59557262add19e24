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
	"github.com/a2aproject/a2a-go/a2a"

	"github.com/SasiVeeramachaneni/travelagent-a2a/auth"
	"github.com/SasiVeeramachaneni/travelagent-a2a/version"
)

// agentSkills describe the travel agent's capabilities for discovery.
func agentSkills() []a2a.AgentSkill {
	return []a2a.AgentSkill{
		{
			ID:   "plan_trip",
			Name: "Plan Trip",
			Description: "Plan a complete trip including destination recommendations, " +
				"accommodations, activities, and budget estimation. Provide " +
				"destination, dates, budget, and preferences for best results.",
			Tags: []string{"travel", "planning", "trip", "vacation"},
			Examples: []string{
				"Plan a 7-day trip to Tokyo with a budget of $3000",
				"Help me plan a romantic getaway to Paris in spring",
				"I want to visit Bali for 10 days, budget-friendly options please",
			},
		},
		{
			ID:   "get_recommendations",
			Name: "Get Travel Recommendations",
			Description: "Get personalized travel recommendations for destinations, " +
				"hotels, restaurants, and activities based on preferences and interests.",
			Tags: []string{"recommendations", "destinations", "hotels", "activities"},
			Examples: []string{
				"What are the best beaches to visit in Thailand?",
				"Recommend family-friendly activities in Orlando",
				"Suggest romantic restaurants in Rome",
			},
		},
		{
			ID:   "calculate_budget",
			Name: "Calculate Trip Budget",
			Description: "Calculate a comprehensive travel budget including flights, " +
				"accommodations, meals, activities, and transportation costs.",
			Tags: []string{"budget", "cost", "finance", "estimation"},
			Examples: []string{
				"How much will a week in London cost?",
				"Calculate budget for 2 people visiting Japan for 14 days",
				"What's a realistic budget for backpacking through Europe?",
			},
		},
		{
			ID:   "create_itinerary",
			Name: "Create Detailed Itinerary",
			Description: "Create a day-by-day travel itinerary with activities, " +
				"timings, and logistics for your trip.",
			Tags: []string{"itinerary", "schedule", "planning", "daily"},
			Examples: []string{
				"Create a 5-day itinerary for New York City",
				"Plan my daily schedule for a week in Barcelona",
				"Make an itinerary for a road trip from LA to San Francisco",
			},
		},
		{
			ID:   "travel_info",
			Name: "Travel Information",
			Description: "Provide essential travel information including visa " +
				"requirements, weather, cultural tips, safety information, " +
				"and local customs for destinations.",
			Tags: []string{"visa", "weather", "culture", "safety", "information"},
			Examples: []string{
				"Do I need a visa to visit Vietnam from USA?",
				"What's the best time to visit Iceland?",
				"Tell me about local customs in Japan",
			},
		},
		{
			ID:   "booking_assistance",
			Name: "Booking Assistance",
			Description: "Provide guidance and assistance with booking flights, " +
				"hotels, and activities including tips for finding deals.",
			Tags: []string{"booking", "flights", "hotels", "deals"},
			Examples: []string{
				"Help me find cheap flights to Hawaii",
				"Where should I book hotels in Amsterdam?",
				"Tips for booking activities in advance",
			},
		},
	}
}

// buildAgentCard creates the A2A discovery document. The card itself
// is public; when auth is enabled it advertises the OAuth2 client
// credentials scheme so callers know how to obtain a token.
func buildAgentCard(baseURL string, authEnabled bool) *a2a.AgentCard {
	card := &a2a.AgentCard{
		Name: "Travel Agent",
		Description: "An intelligent AI-powered travel agent that helps with trip " +
			"planning, destination recommendations, budget calculation, " +
			"itinerary creation, and travel information.",
		URL:                baseURL,
		Version:            version.Version,
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills:             agentSkills(),
		Capabilities: a2a.AgentCapabilities{
			Streaming:              false,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}

	if authEnabled {
		card.SecuritySchemes = a2a.NamedSecuritySchemes{
			"oauth2": a2a.OAuth2SecurityScheme{
				Description: "OAuth2 Client Credentials authentication for agent-to-agent communication",
				Flows: a2a.OAuthFlows{
					ClientCredentials: &a2a.ClientCredentialsOAuthFlow{
						TokenURL: baseURL + auth.TokenEndpointPath,
						Scopes: map[string]string{
							auth.DefaultScope: "Access to Travel Agent A2A endpoints",
						},
					},
				},
			},
		}
		card.Security = []a2a.SecurityRequirements{
			{"oauth2": a2a.SecuritySchemeScopes{auth.DefaultScope}},
		}
	}

	return card
}
