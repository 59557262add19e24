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

// DestinationInfo holds curated knowledge about one destination.
type DestinationInfo struct {
	Country        string
	BestMonths     []string
	Transportation []string
	TopAttractions []string
	LocalCuisine   []string
	SafetyRating   float64
	VisaInfo       string
}

// DestinationPricing holds per-destination cost estimates in USD.
type DestinationPricing struct {
	// FlightsByRegion maps an origin region to per-budget-level
	// round-trip fares.
	FlightsByRegion map[string]map[string]float64

	// AccommodationPerNight maps accommodation type to nightly rate.
	AccommodationPerNight map[string]float64

	// MealsPerDay, ActivitiesPerDay map budget level to daily spend.
	MealsPerDay      map[string]float64
	ActivitiesPerDay map[string]float64

	// TransportPerDay maps local transport mode to daily cost.
	TransportPerDay map[string]float64
}

var destinationData = map[string]DestinationInfo{
	"paris": {
		Country:        "France",
		BestMonths:     []string{"April", "May", "September", "October"},
		Transportation: []string{"metro", "bus", "bike", "walking"},
		TopAttractions: []string{
			"Eiffel Tower",
			"Louvre Museum",
			"Notre-Dame Cathedral",
			"Arc de Triomphe",
			"Sacré-Cœur",
		},
		LocalCuisine: []string{"Croissants", "Escargot", "Coq au Vin", "Crêpes"},
		SafetyRating: 8.5,
		VisaInfo:     "Schengen visa required for most non-EU citizens",
	},
	"tokyo": {
		Country:        "Japan",
		BestMonths:     []string{"March", "April", "October", "November"},
		Transportation: []string{"metro", "train", "bus"},
		TopAttractions: []string{
			"Senso-ji Temple",
			"Tokyo Tower",
			"Meiji Shrine",
			"Shibuya Crossing",
			"Tokyo Skytree",
		},
		LocalCuisine: []string{"Sushi", "Ramen", "Tempura", "Wagyu"},
		SafetyRating: 9.5,
		VisaInfo:     "Visa-free for many countries (up to 90 days)",
	},
	"new york": {
		Country:        "USA",
		BestMonths:     []string{"April", "May", "September", "October", "November"},
		Transportation: []string{"subway", "bus", "taxi", "walking"},
		TopAttractions: []string{
			"Statue of Liberty",
			"Central Park",
			"Times Square",
			"Empire State Building",
			"Brooklyn Bridge",
		},
		LocalCuisine: []string{"Pizza", "Bagels", "Hot Dogs", "Cheesecake"},
		SafetyRating: 7.5,
		VisaInfo:     "ESTA or visa required for most international visitors",
	},
}

var pricingData = map[string]DestinationPricing{
	"paris": {
		FlightsByRegion: map[string]map[string]float64{
			"from_india": {"budget": 650, "moderate": 850, "luxury": 1500},
			"from_usa":   {"budget": 500, "moderate": 750, "luxury": 2000},
			"from_asia":  {"budget": 550, "moderate": 800, "luxury": 1800},
		},
		AccommodationPerNight: map[string]float64{
			"hostel": 35, "budget_hotel": 75, "hotel": 150,
			"vacation_rental": 120, "luxury": 350,
		},
		MealsPerDay:      map[string]float64{"budget": 35, "moderate": 60, "luxury": 120},
		ActivitiesPerDay: map[string]float64{"budget": 15, "moderate": 35, "luxury": 75},
		TransportPerDay: map[string]float64{
			"public_transport": 8, "rental_car": 50, "ride_sharing": 25,
			"walking": 0, "mix": 15,
		},
	},
	"tokyo": {
		FlightsByRegion: map[string]map[string]float64{
			"from_india":  {"budget": 550, "moderate": 750, "luxury": 1400},
			"from_usa":    {"budget": 700, "moderate": 1000, "luxury": 3000},
			"from_europe": {"budget": 600, "moderate": 900, "luxury": 2500},
		},
		AccommodationPerNight: map[string]float64{
			"hostel": 30, "budget_hotel": 60, "hotel": 120,
			"vacation_rental": 100, "luxury": 300,
		},
		MealsPerDay:      map[string]float64{"budget": 30, "moderate": 50, "luxury": 100},
		ActivitiesPerDay: map[string]float64{"budget": 12, "moderate": 30, "luxury": 70},
		TransportPerDay: map[string]float64{
			"public_transport": 10, "rental_car": 70, "ride_sharing": 30,
			"walking": 0, "mix": 18,
		},
	},
	"new york": {
		FlightsByRegion: map[string]map[string]float64{
			"from_india":  {"budget": 750, "moderate": 1000, "luxury": 2500},
			"from_europe": {"budget": 400, "moderate": 650, "luxury": 2000},
			"from_asia":   {"budget": 700, "moderate": 950, "luxury": 2200},
		},
		AccommodationPerNight: map[string]float64{
			"hostel": 50, "budget_hotel": 120, "hotel": 200,
			"vacation_rental": 160, "luxury": 450,
		},
		MealsPerDay:      map[string]float64{"budget": 45, "moderate": 80, "luxury": 150},
		ActivitiesPerDay: map[string]float64{"budget": 20, "moderate": 45, "luxury": 100},
		TransportPerDay: map[string]float64{
			"public_transport": 12, "rental_car": 80, "ride_sharing": 35,
			"walking": 0, "mix": 20,
		},
	},
}

// LookupDestination returns the knowledge entry for a destination.
func LookupDestination(name string) (DestinationInfo, bool) {
	info, ok := destinationData[normalizeDestination(name)]
	return info, ok
}

func lookupPricing(name string) (DestinationPricing, bool) {
	pricing, ok := pricingData[normalizeDestination(name)]
	return pricing, ok
}

func normalizeDestination(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
