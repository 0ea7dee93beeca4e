package models

import "slices"

type Route struct {
	ID        int       `json:"id"`
	PathNodes []int     `json:"path_nodes"`
	Count     int       `json:"count"`
	Desc      string    `json:"desc"`
	Live      *LiveFlow `json:"live,omitempty"`
}

// LiveFlow annotates a route whose count was derived from a live flow
// reading.
type LiveFlow struct {
	CurrentSpeed  float64 `json:"current_speed"`
	FreeFlowSpeed float64 `json:"free_flow_speed"`
	Ratio         float64 `json:"congestion_ratio"`
	Confidence    float64 `json:"confidence"`
	RoadClosure   bool    `json:"road_closure"`
}

// Clone returns a deep copy so callers may mutate the result freely.
func (r Route) Clone() Route {
	c := r
	c.PathNodes = slices.Clone(r.PathNodes)
	if r.Live != nil {
		live := *r.Live
		c.Live = &live
	}
	return c
}

func CloneRoutes(routes []Route) []Route {
	if routes == nil {
		return nil
	}
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = r.Clone()
	}
	return out
}
