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

// BudgetBreakdown is a per-category trip cost estimate in USD.
type BudgetBreakdown struct {
	Flights        float64
	Accommodation  float64
	LocalTransport float64
	Meals          float64
	Activities     float64
	Miscellaneous  float64
	Subtotal       float64
	Total          float64
	PerPerson      float64
	Estimated      bool
}

// Generic estimates used when the destination is not in the pricing
// database.
var genericEstimates = map[string]struct {
	flight, nightly, meals, transport, activities float64
}{
	"budget":   {600, 60, 35, 12, 15},
	"moderate": {900, 130, 60, 20, 35},
	"luxury":   {2000, 300, 120, 40, 80},
}

// CalculateBudget estimates the total trip cost for the given context.
func CalculateBudget(trip TripContext) BudgetBreakdown {
	level := trip.BudgetLevel
	if level == "" {
		level = "moderate"
	}
	travelers := trip.Travelers
	if travelers < 1 {
		travelers = 1
	}
	duration := trip.Duration
	if duration < 1 {
		duration = 1
	}
	nights := duration - 1

	pricing, ok := lookupPricing(trip.Destination)
	if !ok {
		return genericBudget(level, duration, travelers)
	}

	b := BudgetBreakdown{}
	b.Flights = flightCost(trip.Origin, level, pricing) * float64(travelers)
	b.Accommodation = accommodationRate(trip.Accommodation, level, pricing) * float64(nights)
	b.Meals = levelRate(pricing.MealsPerDay, level, 50) * float64(duration) * float64(travelers)
	b.LocalTransport = transportRate(trip.Transport, pricing) * float64(duration) * float64(travelers)
	b.Activities = levelRate(pricing.ActivitiesPerDay, level, 30) * float64(duration) * float64(travelers)

	b.Subtotal = b.Flights + b.Accommodation + b.Meals + b.LocalTransport + b.Activities
	b.Miscellaneous = b.Subtotal * 0.15
	b.Total = b.Subtotal + b.Miscellaneous
	b.PerPerson = b.Total / float64(travelers)
	return b
}

func genericBudget(level string, duration, travelers int) BudgetBreakdown {
	est, ok := genericEstimates[level]
	if !ok {
		est = genericEstimates["moderate"]
	}
	nights := duration - 1

	b := BudgetBreakdown{Estimated: true}
	b.Flights = est.flight * float64(travelers)
	b.Accommodation = est.nightly * float64(nights)
	b.Meals = est.meals * float64(duration) * float64(travelers)
	b.LocalTransport = est.transport * float64(duration) * float64(travelers)
	b.Activities = est.activities * float64(duration) * float64(travelers)

	b.Subtotal = b.Flights + b.Accommodation + b.Meals + b.LocalTransport + b.Activities
	b.Miscellaneous = b.Subtotal * 0.15
	b.Total = b.Subtotal + b.Miscellaneous
	b.PerPerson = b.Total / float64(travelers)
	return b
}

func flightCost(origin, level string, pricing DestinationPricing) float64 {
	if origin == "" {
		return 800
	}
	if fares, ok := pricing.FlightsByRegion[regionFromOrigin(origin)]; ok {
		if fare, ok := fares[level]; ok {
			return fare
		}
	}
	defaults := map[string]float64{"budget": 600, "moderate": 900, "luxury": 2000}
	return defaults[level]
}

func accommodationRate(accommodation, level string, pricing DestinationPricing) float64 {
	if accommodation == "" {
		byLevel := map[string]string{
			"budget": "budget_hotel", "moderate": "hotel", "luxury": "luxury",
		}
		accommodation = byLevel[level]
	}
	if accommodation == "resort" {
		accommodation = "luxury"
	}
	if rate, ok := pricing.AccommodationPerNight[accommodation]; ok {
		return rate
	}
	return 100
}

func transportRate(transport string, pricing DestinationPricing) float64 {
	if rate, ok := pricing.TransportPerDay[transport]; ok {
		return rate
	}
	return pricing.TransportPerDay["mix"]
}

func levelRate(rates map[string]float64, level string, fallback float64) float64 {
	if rate, ok := rates[level]; ok {
		return rate
	}
	return fallback
}

var originRegions = map[string][]string{
	"from_india":  {"india", "delhi", "mumbai", "bangalore"},
	"from_usa":    {"usa", "america", "new york", "los angeles"},
	"from_asia":   {"japan", "china", "korea", "singapore", "tokyo"},
	"from_europe": {"uk", "france", "germany", "europe", "london", "paris"},
}

func regionFromOrigin(origin string) string {
	lower := strings.ToLower(origin)
	for _, region := range []string{"from_india", "from_usa", "from_asia", "from_europe"} {
		for _, marker := range originRegions[region] {
			if strings.Contains(lower, marker) {
				return region
			}
		}
	}
	return "from_asia"
}

// FormatBudget renders a budget breakdown as markdown, comparing it
// against the user's stated budget when one is known.
func FormatBudget(b BudgetBreakdown, userBudget float64) string {
	var sb strings.Builder
	sb.WriteString("# Trip Cost Breakdown\n\n")
	fmt.Fprintf(&sb, "Flights: $%.2f\n", b.Flights)
	fmt.Fprintf(&sb, "Accommodation: $%.2f\n", b.Accommodation)
	fmt.Fprintf(&sb, "Local Transportation: $%.2f\n", b.LocalTransport)
	fmt.Fprintf(&sb, "Meals: $%.2f\n", b.Meals)
	fmt.Fprintf(&sb, "Activities & Attractions: $%.2f\n", b.Activities)
	fmt.Fprintf(&sb, "Miscellaneous: $%.2f\n", b.Miscellaneous)
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "**Total estimated cost: $%.2f**\n", b.Total)
	if b.PerPerson != b.Total {
		fmt.Fprintf(&sb, "Per person: $%.2f\n", b.PerPerson)
	}
	if userBudget > 0 {
		fmt.Fprintf(&sb, "\nYour budget: $%.2f\n", userBudget)
		diff := userBudget - b.Total
		if diff >= 0 {
			fmt.Fprintf(&sb, "Under budget by $%.2f\n", diff)
		} else {
			fmt.Fprintf(&sb, "Over budget by $%.2f\n", -diff)
		}
	}
	if b.Estimated {
		sb.WriteString("\nEstimated costs - actual prices may vary.\n")
	}
	return sb.String()
}
