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
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SasiVeeramachaneni/travelagent-a2a/auth"
)

func TestBuildAgentCard(t *testing.T) {
	card := buildAgentCard("http://localhost:8000", true)

	assert.Equal(t, "Travel Agent", card.Name)
	assert.Equal(t, "http://localhost:8000", card.URL)
	assert.False(t, card.Capabilities.Streaming)
	assert.Equal(t, []string{"text/plain"}, card.DefaultInputModes)

	wantSkills := []string{
		"plan_trip", "get_recommendations", "calculate_budget",
		"create_itinerary", "travel_info", "booking_assistance",
	}
	require.Len(t, card.Skills, len(wantSkills))
	for i, skill := range card.Skills {
		assert.Equal(t, wantSkills[i], skill.ID)
		assert.NotEmpty(t, skill.Description)
		assert.NotEmpty(t, skill.Examples)
	}
}

func TestBuildAgentCard_OAuth2Scheme(t *testing.T) {
	card := buildAgentCard("http://localhost:8000", true)

	require.Contains(t, card.SecuritySchemes, a2a.SecuritySchemeName("oauth2"))
	scheme, ok := card.SecuritySchemes["oauth2"].(a2a.OAuth2SecurityScheme)
	require.True(t, ok, "unexpected scheme type %T", card.SecuritySchemes["oauth2"])

	flow := scheme.Flows.ClientCredentials
	require.NotNil(t, flow)
	assert.Equal(t, "http://localhost:8000"+auth.TokenEndpointPath, flow.TokenURL)
	assert.Contains(t, flow.Scopes, auth.DefaultScope)

	require.Len(t, card.Security, 1)
	assert.Contains(t, card.Security[0], a2a.SecuritySchemeName("oauth2"))
}

func TestBuildAgentCard_AuthDisabled(t *testing.T) {
	card := buildAgentCard("http://localhost:8000", false)

	assert.Empty(t, card.SecuritySchemes)
	assert.Empty(t, card.Security)
}
