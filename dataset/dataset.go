// Package dataset holds the static intersection table and the built-in
// traffic scenarios.
package dataset

import (
	"fmt"
	"time"

	"github.com/golang/geo/s2"

	"cityflow/simulator/models"
)

const (
	earthRadiusMeters = 6371008.8

	RealtimeScenario = "realtime"
)

// Intersections returns a copy of the intersection table.
func Intersections() models.Intersections {
	out := make(models.Intersections, len(intersections))
	for id, c := range intersections {
		out[id] = c
	}
	return out
}

// Scenarios builds the built-in scenarios with their start times placed in
// loc. The order is the display order.
func Scenarios(loc *time.Location) []models.Scenario {
	at := func(year int, month time.Month, day, hour int) *time.Time {
		t := time.Date(year, month, day, hour, 0, 0, 0, loc)
		return &t
	}
	return []models.Scenario{
		{
			ID:          RealtimeScenario,
			Name:        "Real-Time Data",
			Description: "Current traffic patterns (simulated live data)",
			Routes:      models.CloneRoutes(realtimeBaseline),
			Realtime:    true,
		},
		{
			ID:          "april-2025-am",
			Name:        "April 23, 2025 - Morning",
			Description: "Purple Line construction period • 6:00-10:00 AM • Lane reductions on MD 193 • Heavy cut-through traffic",
			Routes:      models.CloneRoutes(april2025Morning),
			StartTime:   at(2025, time.April, 23, 6),
			Period:      "april-2025",
		},
		{
			ID:          "april-2025-pm",
			Name:        "April 23, 2025 - Evening",
			Description: "Purple Line construction period • 3:00-7:00 PM • Turn restrictions at Adelphi Road • Peak congestion",
			Routes:      models.CloneRoutes(april2025Evening),
			StartTime:   at(2025, time.April, 23, 15),
			Period:      "april-2025",
		},
		{
			ID:          "dec-2025-am",
			Name:        "December 15, 2025 - Morning",
			Description: "Post-construction baseline • 6:00-10:00 AM • Normal conditions • Reduced cut-through traffic",
			Routes:      models.CloneRoutes(dec2025Morning),
			StartTime:   at(2025, time.December, 15, 6),
			Period:      "dec-2025",
		},
		{
			ID:          "dec-2025-pm",
			Name:        "December 15, 2025 - Evening",
			Description: "Post-construction baseline • 3:00-7:00 PM • Normal evening rush hour",
			Routes:      models.CloneRoutes(dec2025Evening),
			StartTime:   at(2025, time.December, 15, 15),
			Period:      "dec-2025",
		},
		{
			ID:          "jan-2026-am",
			Name:        "January 2, 2026 - Morning",
			Description: "Post-holiday traffic • 6:00-10:00 AM • Return to work patterns",
			Routes:      models.CloneRoutes(jan2026Morning),
			StartTime:   at(2026, time.January, 2, 6),
			Period:      "jan-2026",
		},
	}
}

// Validate checks that every route has at least two nodes and that every
// node resolves in the intersection table.
func Validate(is models.Intersections, scenarios []models.Scenario) error {
	for _, sc := range scenarios {
		for _, r := range sc.Routes {
			if len(r.PathNodes) < 2 {
				return fmt.Errorf("scenario %s route %d: path has %d nodes", sc.ID, r.ID, len(r.PathNodes))
			}
			if _, err := is.Resolve(r.PathNodes); err != nil {
				return fmt.Errorf("scenario %s route %d: %w", sc.ID, r.ID, err)
			}
		}
	}
	return nil
}

// RouteLengthMeters sums the great-circle length of the route's segments.
func RouteLengthMeters(is models.Intersections, r models.Route) (float64, error) {
	coords, err := is.Resolve(r.PathNodes)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := 1; i < len(coords); i++ {
		a := s2.LatLngFromDegrees(coords[i-1].Lat, coords[i-1].Lng)
		b := s2.LatLngFromDegrees(coords[i].Lat, coords[i].Lng)
		total += a.Distance(b).Radians() * earthRadiusMeters
	}
	return total, nil
}
