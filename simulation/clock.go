package simulation

import (
	"time"

	"cityflow/simulator/models"
)

const (
	morningStartHour = 6
	eveningStartHour = 15
	// wall-clock hours before this snap to the morning period
	snapCutoffHour = 10

	// ObservationWindow bounds how far the clock of a historical scenario
	// runs before it wraps back to the scenario start.
	ObservationWindow = 4 * time.Hour
)

// InitialClock returns the virtual clock value a scenario starts at. Without
// a fixed start the clock snaps to 06:00 or 15:00 of now's day.
func InitialClock(sc models.Scenario, now time.Time) time.Time {
	if sc.StartTime != nil {
		return *sc.StartTime
	}
	hour := eveningStartHour
	if now.Hour() < snapCutoffHour {
		hour = morningStartHour
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
}

// advanceClock moves the clock by speed seconds and wraps historical
// morning/evening periods at the end of the observation window.
func advanceClock(clock time.Time, speed float64, sc models.Scenario) time.Time {
	clock = clock.Add(time.Duration(speed * float64(time.Second)))
	if sc.Realtime || sc.StartTime == nil {
		return clock
	}
	start := *sc.StartTime
	if h := start.Hour(); h != morningStartHour && h != eveningStartHour {
		return clock
	}
	if !clock.Before(start.Add(ObservationWindow)) {
		return start
	}
	return clock
}

// ClockLabel renders the clock the way the map header shows it, e.g.
// "3:05 PM".
func ClockLabel(t time.Time) string {
	return t.Format("3:04 PM")
}
