package models

import "fmt"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Lerp interpolates linearly between p and q in degree space.
func (p LatLng) Lerp(q LatLng, t float64) LatLng {
	return LatLng{
		Lat: p.Lat + (q.Lat-p.Lat)*t,
		Lng: p.Lng + (q.Lng-p.Lng)*t,
	}
}

// Midpoint is the degree-space midpoint of p and q.
func (p LatLng) Midpoint(q LatLng) LatLng {
	return p.Lerp(q, 0.5)
}

// Intersections maps intersection IDs to coordinates.
type Intersections map[int]LatLng

// Resolve maps path nodes to coordinates.
func (is Intersections) Resolve(nodes []int) ([]LatLng, error) {
	coords := make([]LatLng, 0, len(nodes))
	for _, id := range nodes {
		c, ok := is[id]
		if !ok {
			return nil, fmt.Errorf("unknown intersection %d", id)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
