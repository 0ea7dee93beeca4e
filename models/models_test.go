package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectionsResolve(t *testing.T) {
	is := Intersections{1: {Lat: 1, Lng: 2}, 2: {Lat: 3, Lng: 4}}

	coords, err := is.Resolve([]int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []LatLng{{Lat: 3, Lng: 4}, {Lat: 1, Lng: 2}}, coords)

	_, err = is.Resolve([]int{1, 7})
	assert.ErrorContains(t, err, "7")
}

func TestLatLngMidpoint(t *testing.T) {
	p := LatLng{Lat: 38.98, Lng: -76.94}
	q := LatLng{Lat: 38.99, Lng: -76.92}
	mid := p.Midpoint(q)
	assert.InDelta(t, 38.985, mid.Lat, 1e-9)
	assert.InDelta(t, -76.93, mid.Lng, 1e-9)
	assert.Equal(t, "38.980000,-76.940000", p.String())
}

func TestRouteCloneIsDeep(t *testing.T) {
	r := Route{ID: 1, PathNodes: []int{1, 2}, Count: 5, Live: &LiveFlow{CurrentSpeed: 20}}
	c := r.Clone()
	c.PathNodes[0] = 9
	c.Live.CurrentSpeed = 40

	assert.Equal(t, 1, r.PathNodes[0])
	assert.Equal(t, 20.0, r.Live.CurrentSpeed)
	assert.Nil(t, CloneRoutes(nil))
}

func TestScenarioMode(t *testing.T) {
	assert.Equal(t, "LIVE", Scenario{Realtime: true}.Mode())
	assert.Equal(t, "HISTORICAL", Scenario{}.Mode())
}
