package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityflow/simulator/config"
	"cityflow/simulator/models"
)

var flowIntersections = models.Intersections{
	1: {Lat: 38.98, Lng: -76.94},
	2: {Lat: 38.99, Lng: -76.94},
	3: {Lat: 38.98, Lng: -76.93},
	4: {Lat: 38.98, Lng: -76.95},
	// far outside the default University Park bounds
	9: {Lat: 40.71, Lng: -74.00},
}

func flowRoutes() []models.Route {
	return []models.Route{
		{ID: 1, PathNodes: []int{1, 2}, Count: 11},
		{ID: 2, PathNodes: []int{1, 4, 3}, Count: 22},
		{ID: 3, PathNodes: []int{4, 9}, Count: 33},
	}
}

func testTrafficConfig(baseURL string) config.TrafficConfig {
	return config.TrafficConfig{
		Enabled:         true,
		APIKey:          "test-key",
		FlowBaseURL:     baseURL,
		Zoom:            18,
		RefreshInterval: time.Minute,
		RequestTimeout:  time.Second,
		Bounds: config.AreaBounds{
			North: 38.9950,
			South: 38.9550,
			East:  -76.9200,
			West:  -76.9700,
		},
	}
}

func flowJSON(current, free float64) string {
	return fmt.Sprintf(`{"flowSegmentData":{"frc":"FRC3","currentSpeed":%v,"freeFlowSpeed":%v,"confidence":0.9,"roadClosure":false}}`, current, free)
}

// flowServer answers with body for every request and counts the hits.
func flowServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newAdapter(cfg config.TrafficConfig) *LiveAdapter {
	return NewLiveAdapter(cfg, flowIntersections, NewFlowClient(cfg, &CacheService{}), rand.New(rand.NewPCG(1, 1)))
}

func TestVolumeForRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		min, max int
	}{
		{"free flowing", 0.95, 10, 30},
		{"just above 0.85", 0.8501, 10, 30},
		{"exactly 0.85", 0.85, 20, 50},
		{"light", 0.7, 20, 50},
		{"exactly 0.65", 0.65, 50, 80},
		{"moderate", 0.5, 50, 80},
		{"exactly 0.45", 0.45, 80, 120},
		{"jammed", 0.1, 80, 120},
		{"standing", 0, 80, 120},
	}
	src := rand.NewPCG(42, 24)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 500 {
				v := VolumeForRatio(tt.ratio, src)
				assert.GreaterOrEqual(t, v, tt.min)
				assert.Less(t, v, tt.max)
			}
		})
	}
}

func TestFlowClientParsesFlowSegment(t *testing.T) {
	srv, _ := flowServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/absolute/18/json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "38.985000,-76.940000", r.URL.Query().Get("point"))
		_, _ = w.Write([]byte(flowJSON(24, 40)))
	})

	client := NewFlowClient(testTrafficConfig(srv.URL), &CacheService{})
	flow, err := client.Flow(context.Background(), models.LatLng{Lat: 38.985, Lng: -76.94})
	require.NoError(t, err)
	assert.Equal(t, 24.0, flow.CurrentSpeed)
	assert.Equal(t, 40.0, flow.FreeFlowSpeed)
	assert.InDelta(t, 0.6, flow.Ratio, 1e-9)
	assert.Equal(t, 0.9, flow.Confidence)
}

func TestFlowClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{"server error", http.StatusInternalServerError, `{}`, false},
		{"forbidden", http.StatusForbidden, `{"error":"bad key"}`, false},
		{"not json", http.StatusOK, `<html>`, true},
		{"missing segment", http.StatusOK, `{"other":1}`, true},
		{"zero free flow", http.StatusOK, flowJSON(10, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			client := NewFlowClient(testTrafficConfig(srv.URL), &CacheService{})
			_, err := client.Flow(context.Background(), models.LatLng{Lat: 38.98, Lng: -76.94})
			require.Error(t, err)
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedFlow))
		})
	}
}

func TestFlowClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewFlowClient(testTrafficConfig(url), &CacheService{})
	_, err := client.Flow(context.Background(), models.LatLng{Lat: 38.98, Lng: -76.94})
	assert.Error(t, err)
}

func TestFlowClientRequiresKey(t *testing.T) {
	cfg := testTrafficConfig("http://127.0.0.1:1")
	cfg.APIKey = config.PlaceholderAPIKey
	_, err := NewFlowClient(cfg, &CacheService{}).Flow(context.Background(), models.LatLng{})
	assert.ErrorIs(t, err, ErrLiveDisabled)
}

func TestFetchLiveVolumesDisabledMakesNoRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.TrafficConfig)
	}{
		{"disabled", func(c *config.TrafficConfig) { c.Enabled = false }},
		{"empty key", func(c *config.TrafficConfig) { c.APIKey = "" }},
		{"placeholder key", func(c *config.TrafficConfig) { c.APIKey = config.PlaceholderAPIKey }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(flowJSON(10, 40)))
			})
			cfg := testTrafficConfig(srv.URL)
			tt.mutate(&cfg)

			assert.Nil(t, newAdapter(cfg).FetchLiveVolumes(context.Background(), flowRoutes()))
			assert.Zero(t, hits.Load())
		})
	}
}

func TestFetchLiveVolumesMapsRatios(t *testing.T) {
	srv, hits := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flowJSON(10, 40)))
	})
	routes := flowRoutes()[:2]

	got := newAdapter(testTrafficConfig(srv.URL)).FetchLiveVolumes(context.Background(), routes)
	require.Len(t, got, 2)
	assert.Equal(t, int32(2), hits.Load())
	for _, r := range got {
		assert.GreaterOrEqual(t, r.Count, 80)
		assert.Less(t, r.Count, 120)
		require.NotNil(t, r.Live)
		assert.InDelta(t, 0.25, r.Live.Ratio, 1e-9)
	}
	assert.Equal(t, 11, routes[0].Count, "input routes are not modified")
	assert.Nil(t, routes[0].Live)
}

func TestFetchLiveVolumesFallsBackPerRoute(t *testing.T) {
	// route 1 midpoint is 38.985,-76.94; fail only that one
	srv, hits := flowServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("point") == "38.985000,-76.940000" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(flowJSON(38, 40)))
	})

	got := newAdapter(testTrafficConfig(srv.URL)).FetchLiveVolumes(context.Background(), flowRoutes())
	require.Len(t, got, 3)
	assert.Equal(t, int32(2), hits.Load(), "route outside the area is never requested")

	assert.Equal(t, 11, got[0].Count)
	assert.Nil(t, got[0].Live)

	assert.GreaterOrEqual(t, got[1].Count, 10)
	assert.Less(t, got[1].Count, 30)
	assert.NotNil(t, got[1].Live)

	assert.Equal(t, 33, got[2].Count)
	assert.Nil(t, got[2].Live)
}

func TestFetchLiveVolumesTotalFailure(t *testing.T) {
	srv, hits := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	got := newAdapter(testTrafficConfig(srv.URL)).FetchLiveVolumes(context.Background(), flowRoutes())
	assert.Nil(t, got)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchLiveVolumesSpacesRequests(t *testing.T) {
	srv, _ := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flowJSON(30, 40)))
	})
	cfg := testTrafficConfig(srv.URL)
	cfg.RequestDelay = 25 * time.Millisecond

	start := time.Now()
	got := newAdapter(cfg).FetchLiveVolumes(context.Background(), flowRoutes())
	require.NotNil(t, got)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFetchLiveVolumesStopsOnCancel(t *testing.T) {
	srv, _ := flowServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flowJSON(30, 40)))
	})
	cfg := testTrafficConfig(srv.URL)
	cfg.RequestDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	assert.Nil(t, newAdapter(cfg).FetchLiveVolumes(ctx, flowRoutes()))
}
