package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"cityflow/simulator/config"
	"cityflow/simulator/log"
	"cityflow/simulator/models"
)

var (
	ErrLiveDisabled  = errors.New("live traffic data disabled")
	ErrOutsideArea   = errors.New("point outside the configured area")
	ErrMalformedFlow = errors.New("malformed flow segment data")
)

type flowResponse struct {
	FlowSegmentData *struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
		Confidence    float64 `json:"confidence"`
		RoadClosure   bool    `json:"roadClosure"`
	} `json:"flowSegmentData"`
}

// FlowClient reads TomTom flow segment data for single points.
type FlowClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	zoom       int
	cache      *CacheService
	cacheTTL   time.Duration
}

func NewFlowClient(cfg config.TrafficConfig, cache *CacheService) *FlowClient {
	return &FlowClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.FlowBaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		zoom:       cfg.Zoom,
		cache:      cache,
		cacheTTL:   cfg.RefreshInterval,
	}
}

func (c *FlowClient) cacheKey(p models.LatLng) string {
	return fmt.Sprintf("traffic:flow:%.6f:%.6f:%d", p.Lat, p.Lng, c.zoom)
}

// Flow returns the flow reading for the road segment closest to p.
func (c *FlowClient) Flow(ctx context.Context, p models.LatLng) (models.LiveFlow, error) {
	if c.apiKey == "" || c.apiKey == config.PlaceholderAPIKey {
		return models.LiveFlow{}, ErrLiveDisabled
	}

	var flow models.LiveFlow
	if hit, err := c.cache.Get(ctx, c.cacheKey(p), &flow); err == nil && hit {
		flowCacheHits.Inc()
		return flow, nil
	}

	flow, err := c.fetch(ctx, p)
	if err != nil {
		return models.LiveFlow{}, err
	}
	if err := c.cache.Set(ctx, c.cacheKey(p), flow, c.cacheTTL); err != nil {
		log.Debug("flow cache write failed", log.ErrorField(err))
	}
	return flow, nil
}

func (c *FlowClient) fetch(ctx context.Context, p models.LatLng) (models.LiveFlow, error) {
	q := url.Values{}
	q.Set("point", fmt.Sprintf("%f,%f", p.Lat, p.Lng))
	q.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/absolute/%d/json?%s", c.baseURL, c.zoom, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.LiveFlow{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.LiveFlow{}, fmt.Errorf("flow request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.LiveFlow{}, fmt.Errorf("flow request: unexpected status %d", resp.StatusCode)
	}

	var body flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.LiveFlow{}, fmt.Errorf("%w: %v", ErrMalformedFlow, err)
	}
	seg := body.FlowSegmentData
	if seg == nil {
		return models.LiveFlow{}, fmt.Errorf("%w: missing flowSegmentData", ErrMalformedFlow)
	}
	if seg.FreeFlowSpeed <= 0 {
		return models.LiveFlow{}, fmt.Errorf("%w: free flow speed %v", ErrMalformedFlow, seg.FreeFlowSpeed)
	}
	return models.LiveFlow{
		CurrentSpeed:  seg.CurrentSpeed,
		FreeFlowSpeed: seg.FreeFlowSpeed,
		Ratio:         seg.CurrentSpeed / seg.FreeFlowSpeed,
		Confidence:    seg.Confidence,
		RoadClosure:   seg.RoadClosure,
	}, nil
}

// FlowFetcher looks up the flow at a single point.
type FlowFetcher interface {
	Flow(ctx context.Context, p models.LatLng) (models.LiveFlow, error)
}

// volumeBuckets maps congestion ratios (current / free-flow speed) to the
// volume range drawn for a route. Slower traffic means more vehicles.
var volumeBuckets = []struct {
	above    float64
	min, max float64
}{
	{0.85, 10, 30},
	{0.65, 20, 50},
	{0.45, 50, 80},
	{math.Inf(-1), 80, 120},
}

// VolumeForRatio draws a vehicle volume for a congestion ratio.
func VolumeForRatio(ratio float64, src rand.Source) int {
	for _, b := range volumeBuckets {
		if ratio > b.above {
			u := distuv.Uniform{Min: b.min, Max: b.max, Src: src}
			return int(math.Floor(u.Rand()))
		}
	}
	// NaN ratio
	last := volumeBuckets[len(volumeBuckets)-1]
	return int(last.min)
}

// LiveAdapter turns live flow readings into route volumes. Routes whose
// lookup fails keep their static count.
type LiveAdapter struct {
	cfg           config.TrafficConfig
	intersections models.Intersections
	flows         FlowFetcher

	mu  sync.Mutex
	rng *rand.Rand
}

func NewLiveAdapter(cfg config.TrafficConfig, is models.Intersections, flows FlowFetcher, rng *rand.Rand) *LiveAdapter {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LiveAdapter{cfg: cfg, intersections: is, flows: flows, rng: rng}
}

// FetchLiveVolumes returns routes with live volumes, or nil when live data
// is disabled or no route could be looked up.
func (a *LiveAdapter) FetchLiveVolumes(ctx context.Context, routes []models.Route) []models.Route {
	if !a.cfg.LiveEnabled() {
		return nil
	}

	out := models.CloneRoutes(routes)
	successes := 0
	for i := range out {
		if i > 0 && a.cfg.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(a.cfg.RequestDelay):
			}
		}

		flow, err := a.routeFlow(ctx, out[i])
		if err != nil {
			liveFetches.WithLabelValues(outcomeFallback).Inc()
			log.Debug("live flow unavailable, using static count",
				log.Int("route", out[i].ID), log.ErrorField(err))
			continue
		}
		liveFetches.WithLabelValues(outcomeLive).Inc()
		out[i].Count = a.volume(flow.Ratio)
		out[i].Live = &flow
		successes++
	}

	if successes == 0 {
		log.Warn("no live flow data, keeping static routes", log.Int("routes", len(routes)))
		return nil
	}
	log.Info("live volumes fetched", log.Int("live", successes), log.Int("routes", len(routes)))
	return out
}

// routeFlow queries the midpoint between a route's first and last
// intersection.
func (a *LiveAdapter) routeFlow(ctx context.Context, r models.Route) (models.LiveFlow, error) {
	if len(r.PathNodes) < 2 {
		return models.LiveFlow{}, fmt.Errorf("route %d has fewer than two nodes", r.ID)
	}
	ends, err := a.intersections.Resolve([]int{r.PathNodes[0], r.PathNodes[len(r.PathNodes)-1]})
	if err != nil {
		return models.LiveFlow{}, err
	}
	mid := ends[0].Midpoint(ends[1])
	if !a.cfg.Bounds.Contains(mid.Lat, mid.Lng) {
		return models.LiveFlow{}, fmt.Errorf("%w: %s", ErrOutsideArea, mid)
	}
	return a.flows.Flow(ctx, mid)
}

func (a *LiveAdapter) volume(ratio float64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return VolumeForRatio(ratio, a.rng)
}
