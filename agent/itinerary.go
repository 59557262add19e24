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

// Activity is one scheduled item in a day plan.
type Activity struct {
	Time    string
	Name    string
	Details string
	Cost    string
}

// DayPlan is one day of an itinerary.
type DayPlan struct {
	Title      string
	Details    string
	Activities []Activity
}

// Itinerary is a complete day-by-day trip plan.
type Itinerary struct {
	Title       string
	Destination string
	Duration    int
	Days        []DayPlan
}

var itineraryTemplates = map[string][]DayPlan{
	"paris": {
		{
			Title: "Iconic Landmarks",
			Activities: []Activity{
				{Time: "10:00 AM", Name: "Visit Eiffel Tower", Cost: "$26"},
				{Time: "1:00 PM", Name: "Lunch at local café", Cost: "$25"},
				{Time: "3:00 PM", Name: "Seine River cruise", Cost: "$15"},
				{Time: "6:00 PM", Name: "Explore Champs-Élysées"},
				{Time: "8:00 PM", Name: "Dinner in Latin Quarter", Cost: "$35"},
			},
		},
		{
			Title: "Art & Culture",
			Activities: []Activity{
				{Time: "9:00 AM", Name: "Louvre Museum visit", Cost: "$17"},
				{Time: "1:00 PM", Name: "Lunch near museum", Cost: "$20"},
				{Time: "3:00 PM", Name: "Tuileries Garden walk"},
				{Time: "4:30 PM", Name: "Musée d'Orsay", Cost: "$14"},
				{Time: "7:00 PM", Name: "Montmartre & Sacré-Cœur"},
				{Time: "9:00 PM", Name: "Dinner in Montmartre", Cost: "$30"},
			},
		},
	},
	"tokyo": {
		{
			Title: "Traditional Tokyo",
			Activities: []Activity{
				{Time: "8:00 AM", Name: "Visit Senso-ji Temple"},
				{Time: "10:30 AM", Name: "Explore Nakamise Street"},
				{Time: "12:00 PM", Name: "Sushi lunch", Cost: "$25"},
				{Time: "2:00 PM", Name: "Meiji Shrine visit"},
				{Time: "4:00 PM", Name: "Harajuku shopping"},
				{Time: "7:00 PM", Name: "Shibuya Crossing"},
				{Time: "8:00 PM", Name: "Izakaya dinner", Cost: "$35"},
			},
		},
	},
}

// CreateItinerary builds a day-by-day plan for the trip. Destinations
// without a template get a generic interest-driven plan.
func CreateItinerary(trip TripContext) Itinerary {
	duration := trip.Duration
	if duration < 1 {
		duration = 1
	}
	destination := trip.Destination
	if destination == "" {
		destination = "your destination"
	}

	it := Itinerary{
		Title:       fmt.Sprintf("%d-Day Trip to %s", duration, destination),
		Destination: destination,
		Duration:    duration,
		Days:        make([]DayPlan, 0, duration+1),
	}

	it.Days = append(it.Days, arrivalDay(destination))

	templates := itineraryTemplates[normalizeDestination(destination)]
	for day := 1; day < duration; day++ {
		if len(templates) > 0 {
			it.Days = append(it.Days, templates[(day-1)%len(templates)])
		} else {
			it.Days = append(it.Days, genericDay(destination, trip.Interests))
		}
	}

	it.Days = append(it.Days, departureDay())
	return it
}

func arrivalDay(destination string) DayPlan {
	return DayPlan{
		Title:   "Arrival Day",
		Details: fmt.Sprintf("Arrive in %s and settle in", destination),
		Activities: []Activity{
			{Time: "Upon Arrival", Name: "Airport to Hotel Transfer",
				Details: "Take airport shuttle, taxi, or public transport to accommodation"},
			{Time: "Afternoon", Name: "Hotel Check-in",
				Details: "Check into your accommodation and freshen up"},
			{Time: "Evening", Name: "Light exploration & dinner",
				Details: "Take a relaxed walk around your neighborhood and find a local restaurant",
				Cost:    "$25-40"},
		},
	}
}

func departureDay() DayPlan {
	return DayPlan{
		Title:   "Departure Day",
		Details: "Check out and head to the airport",
		Activities: []Activity{
			{Time: "Morning", Name: "Pack and check out",
				Details: "Leave time for a final stroll or souvenir stop"},
			{Time: "Departure", Name: "Transfer to airport",
				Details: "Allow extra time for international departures"},
		},
	}
}

func genericDay(destination string, interests []string) DayPlan {
	theme := "Explore " + destination
	activities := []Activity{
		{Time: "Morning", Name: "Visit top local attractions"},
		{Time: "Afternoon", Name: "Try the local cuisine", Cost: "$20-40"},
		{Time: "Evening", Name: "Neighborhood walk and dinner", Cost: "$25-45"},
	}
	if len(interests) > 0 {
		theme = fmt.Sprintf("%s: %s", theme, strings.Join(interests, ", "))
	}
	return DayPlan{Title: theme, Activities: activities}
}

// FormatItinerary renders an itinerary as markdown.
func FormatItinerary(it Itinerary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", it.Title)
	for i, day := range it.Days {
		fmt.Fprintf(&sb, "\n## Day %d - %s\n", i+1, day.Title)
		if day.Details != "" {
			sb.WriteString(day.Details + "\n")
		}
		for _, activity := range day.Activities {
			fmt.Fprintf(&sb, "\n**%s** - %s\n", activity.Time, activity.Name)
			if activity.Details != "" {
				sb.WriteString("  " + activity.Details + "\n")
			}
			if activity.Cost != "" {
				sb.WriteString("  Cost: " + activity.Cost + "\n")
			}
		}
	}
	return sb.String()
}
