package models

import "time"

type Scenario struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Routes      []Route    `json:"-"`
	StartTime   *time.Time `json:"start_time"`
	Realtime    bool       `json:"is_realtime"`
	// Period names the historical date range the scenario was observed in.
	Period string `json:"period,omitempty"`
}

func (s Scenario) Mode() string {
	if s.Realtime {
		return "LIVE"
	}
	return "HISTORICAL"
}
