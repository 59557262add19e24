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
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TripContext accumulates trip details extracted from user messages
// over the course of a conversation.
type TripContext struct {
	Destination   string   `json:"destination,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Budget        float64  `json:"budget,omitempty"`
	BudgetLevel   string   `json:"budget_level,omitempty"`
	Duration      int      `json:"duration,omitempty"`
	Travelers     int      `json:"travelers,omitempty"`
	Accommodation string   `json:"accommodation_type,omitempty"`
	Transport     string   `json:"local_transport,omitempty"`
	Interests     []string `json:"interests,omitempty"`
}

// knownDestinations are the cities the built-in knowledge base covers
// for extraction. Matching is case-insensitive substring.
var knownDestinations = []string{
	"paris", "tokyo", "new york", "london", "rome",
	"barcelona", "dubai", "singapore", "sydney", "bali",
	"amsterdam", "berlin", "lisbon", "prague", "bangkok",
}

var (
	originPatterns = []*regexp.Regexp{
		regexp.MustCompile(`from\s+([a-zA-Z ]+?)(?:\s+to\s|\s*$|,)`),
		regexp.MustCompile(`traveling\s+from\s+([a-zA-Z ]+)`),
		regexp.MustCompile(`leaving\s+from\s+([a-zA-Z ]+)`),
	}

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*)`),
		regexp.MustCompile(`(\d+(?:,\d{3})*)\s*(?:dollars?|usd)`),
		regexp.MustCompile(`budget\s+(?:of\s+)?\$?\s*(\d+(?:,\d{3})*)`),
	}

	durationPatterns = []struct {
		re   *regexp.Regexp
		unit string
	}{
		{regexp.MustCompile(`(\d+)\s*days?`), "days"},
		{regexp.MustCompile(`(\d+)\s*weeks?`), "weeks"},
		{regexp.MustCompile(`(\d+)\s*nights?`), "nights"},
	}

	travelersPattern = regexp.MustCompile(`(\d+)\s*(?:people|person|travelers?|passengers?)`)

	titleCaser = cases.Title(language.English)
)

var interestKeywords = map[string][]string{
	"culture":    {"museum", "culture", "historical", "history", "art"},
	"adventure":  {"adventure", "hiking", "outdoor", "nature", "trek"},
	"food":       {"food", "restaurant", "dining", "cuisine", "culinary"},
	"relaxation": {"relax", "beach", "spa", "peaceful", "quiet"},
	"nightlife":  {"nightlife", "bar", "club", "party"},
	"shopping":   {"shopping", "mall", "market", "boutique"},
}

// ExtractContext parses a user message and merges any trip details it
// mentions into a copy of the current context. Fields absent from the
// message keep their prior values.
func ExtractContext(message string, current TripContext) TripContext {
	ctx := current
	ctx.Interests = append([]string(nil), current.Interests...)
	lower := strings.ToLower(message)

	for _, dest := range knownDestinations {
		if strings.Contains(lower, dest) {
			ctx.Destination = titleCaser.String(dest)
			break
		}
	}

	for _, re := range originPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			origin := strings.TrimSpace(m[1])
			if origin != "" && !isKnownDestination(origin) {
				ctx.Origin = titleCaser.String(origin)
			}
			break
		}
	}

	for _, re := range budgetPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err == nil {
				ctx.Budget = amount
			}
			break
		}
	}

	switch {
	case strings.Contains(lower, "luxury") || strings.Contains(lower, "premium") || strings.Contains(lower, "high-end"):
		ctx.BudgetLevel = "luxury"
	case strings.Contains(lower, "moderate") || strings.Contains(lower, "mid-range"):
		ctx.BudgetLevel = "moderate"
	case strings.Contains(lower, "budget") || strings.Contains(lower, "cheap"):
		ctx.BudgetLevel = "budget"
	}

	for _, p := range durationPatterns {
		if m := p.re.FindStringSubmatch(lower); m != nil {
			value, err := strconv.Atoi(m[1])
			if err != nil {
				break
			}
			switch p.unit {
			case "weeks":
				value *= 7
			case "nights":
				value++
			}
			ctx.Duration = value
			break
		}
	}

	if m := travelersPattern.FindStringSubmatch(lower); m != nil {
		if value, err := strconv.Atoi(m[1]); err == nil {
			ctx.Travelers = value
		}
	}

	switch {
	case strings.Contains(lower, "hostel"):
		ctx.Accommodation = "hostel"
	case strings.Contains(lower, "airbnb") || strings.Contains(lower, "vacation rental"):
		ctx.Accommodation = "vacation_rental"
	case strings.Contains(lower, "resort"):
		ctx.Accommodation = "resort"
	case strings.Contains(lower, "hotel"):
		ctx.Accommodation = "hotel"
	}

	switch {
	case strings.Contains(lower, "public transport") || strings.Contains(lower, "metro") || strings.Contains(lower, "bus"):
		ctx.Transport = "public_transport"
	case strings.Contains(lower, "rental car") || strings.Contains(lower, "car rental"):
		ctx.Transport = "rental_car"
	case strings.Contains(lower, "taxi") || strings.Contains(lower, "uber") || strings.Contains(lower, "ride"):
		ctx.Transport = "ride_sharing"
	case strings.Contains(lower, "walk"):
		ctx.Transport = "walking"
	}

	for interest, keywords := range interestKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				ctx.addInterest(interest)
				break
			}
		}
	}

	return ctx
}

func (c *TripContext) addInterest(interest string) {
	for _, existing := range c.Interests {
		if existing == interest {
			return
		}
	}
	c.Interests = append(c.Interests, interest)
}

// HasMinimumTripInfo reports whether enough is known to plan a trip.
func (c *TripContext) HasMinimumTripInfo() bool {
	return c.Destination != "" && c.Duration > 0
}

// ToAttributes converts the context to a session attribute map.
func (c *TripContext) ToAttributes() map[string]any {
	attrs := map[string]any{}
	if c.Destination != "" {
		attrs["destination"] = c.Destination
	}
	if c.Origin != "" {
		attrs["origin"] = c.Origin
	}
	if c.Budget > 0 {
		attrs["budget"] = c.Budget
	}
	if c.BudgetLevel != "" {
		attrs["budget_level"] = c.BudgetLevel
	}
	if c.Duration > 0 {
		attrs["duration"] = c.Duration
	}
	if c.Travelers > 0 {
		attrs["travelers"] = c.Travelers
	}
	if c.Accommodation != "" {
		attrs["accommodation_type"] = c.Accommodation
	}
	if c.Transport != "" {
		attrs["local_transport"] = c.Transport
	}
	if len(c.Interests) > 0 {
		interests := make([]any, len(c.Interests))
		for i, v := range c.Interests {
			interests[i] = v
		}
		attrs["interests"] = interests
	}
	return attrs
}

// ContextFromAttributes rebuilds a TripContext from session attributes.
// Numeric values may arrive as float64 after a JSON round trip.
func ContextFromAttributes(attrs map[string]any) TripContext {
	ctx := TripContext{}
	if v, ok := attrs["destination"].(string); ok {
		ctx.Destination = v
	}
	if v, ok := attrs["origin"].(string); ok {
		ctx.Origin = v
	}
	ctx.Budget = attrFloat(attrs, "budget")
	if v, ok := attrs["budget_level"].(string); ok {
		ctx.BudgetLevel = v
	}
	ctx.Duration = int(attrFloat(attrs, "duration"))
	ctx.Travelers = int(attrFloat(attrs, "travelers"))
	if v, ok := attrs["accommodation_type"].(string); ok {
		ctx.Accommodation = v
	}
	if v, ok := attrs["local_transport"].(string); ok {
		ctx.Transport = v
	}
	switch v := attrs["interests"].(type) {
	case []string:
		ctx.Interests = append([]string(nil), v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				ctx.Interests = append(ctx.Interests, s)
			}
		}
	}
	return ctx
}

func attrFloat(attrs map[string]any, key string) float64 {
	switch v := attrs[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func isKnownDestination(name string) bool {
	lower := strings.ToLower(name)
	for _, dest := range knownDestinations {
		if dest == lower {
			return true
		}
	}
	return false
}
