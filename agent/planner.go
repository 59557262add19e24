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
	"fmt"
	"strings"
)

// Recommendations groups suggestion lists for a destination.
type Recommendations struct {
	Activities     []string
	Dining         []string
	Accommodations []string
	Transport      []string
	BestMonths     []string
}

var accommodationsByLevel = map[string][]string{
	"budget": {
		"Hostels in central locations",
		"Budget hotels near public transport",
		"Shared Airbnb accommodations",
	},
	"moderate": {
		"3-star hotels in good neighborhoods",
		"Boutique hotels",
		"Private Airbnb apartments",
		"Bed & Breakfast establishments",
	},
	"luxury": {
		"5-star hotels with full amenities",
		"Luxury boutique hotels",
		"Premium vacation rentals",
		"Resort properties",
	},
}

// GenerateRecommendations builds suggestions for the trip context.
// Returns false when the destination is unknown.
func GenerateRecommendations(trip TripContext) (Recommendations, bool) {
	info, ok := LookupDestination(trip.Destination)
	if !ok {
		return Recommendations{}, false
	}

	rec := Recommendations{
		Transport:  info.Transportation,
		BestMonths: info.BestMonths,
	}

	interests := trip.Interests
	if len(interests) == 0 {
		interests = []string{"culture", "food"}
	}
	for _, interest := range interests {
		switch interest {
		case "culture", "adventure":
			for i, attraction := range info.TopAttractions {
				if i >= 3 {
					break
				}
				rec.Activities = append(rec.Activities, "Visit "+attraction)
			}
		case "food":
			for i, dish := range info.LocalCuisine {
				if i >= 2 {
					break
				}
				rec.Dining = append(rec.Dining, "Try local "+dish)
			}
		}
	}
	if len(rec.Activities) == 0 {
		for i, attraction := range info.TopAttractions {
			if i >= 3 {
				break
			}
			rec.Activities = append(rec.Activities, "Visit "+attraction)
		}
	}

	level := trip.BudgetLevel
	if level == "" {
		level = "moderate"
	}
	rec.Accommodations = accommodationsByLevel[level]
	if rec.Accommodations == nil {
		rec.Accommodations = accommodationsByLevel["moderate"]
	}

	return rec, true
}

// FormatRecommendations renders recommendations as markdown.
func FormatRecommendations(rec Recommendations) string {
	var sb strings.Builder
	sb.WriteString("Based on your preferences, here are my recommendations:\n")

	writeSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n**" + title + ":**\n")
		for _, item := range items {
			sb.WriteString("  - " + item + "\n")
		}
	}

	writeSection("Activities", rec.Activities)
	writeSection("Dining", rec.Dining)
	writeSection("Accommodation Options", rec.Accommodations)
	writeSection("Getting Around", rec.Transport)
	if len(rec.BestMonths) > 0 {
		sb.WriteString("\nBest time to visit: " + strings.Join(rec.BestMonths, ", ") + "\n")
	}
	return sb.String()
}

// TravelSupportInfo answers visa, safety, and emergency questions for
// a destination.
func TravelSupportInfo(destination string) (string, bool) {
	info, ok := LookupDestination(destination)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("# Travel Support Information\n\n")
	sb.WriteString("## Visa Requirements\n")
	sb.WriteString(info.VisaInfo + "\n\n")
	sb.WriteString("## Safety Tips\n")
	fmt.Fprintf(&sb, "  - Safety rating: %.1f/10\n", info.SafetyRating)
	for _, tip := range []string{
		"Keep copies of important documents",
		"Register with your embassy",
		"Purchase comprehensive travel insurance",
		"Keep emergency contacts handy",
	} {
		sb.WriteString("  - " + tip + "\n")
	}
	sb.WriteString("\n## Emergency Contacts\n")
	sb.WriteString("Local Emergency: 112 (Europe) / 911 (US)\n")
	sb.WriteString("Tourist Police: Check local numbers\n")
	sb.WriteString("Embassy: Contact your country's embassy\n")
	return sb.String(), true
}

// BookingGuidance is the static booking-assistance reply.
func BookingGuidance() string {
	return "I can help guide you through the booking process!\n\n" +
		"Here's what I recommend:\n\n" +
		"**For Flights:**\n" +
		"  - Compare prices on: Skyscanner, Google Flights, Kayak\n" +
		"  - Book directly with airlines when possible\n\n" +
		"**For Accommodation:**\n" +
		"  - Hotels: Booking.com, Hotels.com, official hotel websites\n" +
		"  - Vacation rentals: Airbnb, Vrbo\n\n" +
		"**For Activities:**\n" +
		"  - GetYourGuide, Viator, local tour operators\n\n" +
		"I can provide specific recommendations and links based on your itinerary. " +
		"Would you like me to suggest specific options?"
}
