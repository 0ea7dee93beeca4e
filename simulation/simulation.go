// Package simulation animates vehicle tokens along the routes of the active
// traffic scenario and keeps the virtual clock.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"cityflow/simulator/dataset"
	"cityflow/simulator/models"
)

const (
	// ProgressStep is the per-frame progress of a token at speed 1, which
	// takes a token across its route in about 200 frames.
	ProgressStep = 0.005
	// SpawnDivisor turns a route count into a per-frame spawn probability.
	SpawnDivisor = 5000.0
	// FramesPerClockTick is the number of frames between clock advances.
	FramesPerClockTick = 60
)

var ErrInvalidSpeed = errors.New("speed must be a finite, non-negative number")

type Vehicle struct {
	ID       string
	Route    models.Route
	Progress float64

	path []models.LatLng
}

func (v *Vehicle) Position() models.LatLng {
	return Interpolate(v.path, v.Progress)
}

type VehicleState struct {
	ID       string        `json:"id"`
	RouteID  int           `json:"route_id"`
	Progress float64       `json:"progress"`
	Position models.LatLng `json:"position"`
}

// Snapshot is a consistent copy of everything the presentation layer reads
// each frame.
type Snapshot struct {
	Generation uint64          `json:"generation"`
	Scenario   models.Scenario `json:"scenario"`
	Clock      time.Time       `json:"clock"`
	Frame      uint64          `json:"frame"`
	Playing    bool            `json:"playing"`
	Speed      float64         `json:"speed"`
	Routes     []models.Route  `json:"routes"`
	Vehicles   []VehicleState  `json:"vehicles"`
}

type Options struct {
	Intersections models.Intersections
	Scenarios     []models.Scenario
	// Rand drives spawning and perturbation. Defaults to a randomly seeded
	// PCG source.
	Rand *rand.Rand
	// Now is the wall clock used for scenarios without a fixed start.
	Now      func() time.Time
	Location *time.Location
	Speed    float64
}

// Simulation is the single owner of the active scenario, its routes, the
// vehicle tokens and the virtual clock. All methods are safe for concurrent
// use.
type Simulation struct {
	mu sync.RWMutex

	intersections models.Intersections
	scenarios     map[string]models.Scenario
	order         []string
	rng           *rand.Rand
	now           func() time.Time
	loc           *time.Location

	scenario   models.Scenario
	generation uint64
	routes     []models.Route
	vehicles   []*Vehicle
	clock      time.Time
	frame      uint64
	speed      float64
	playing    bool
}

func New(opts Options) (*Simulation, error) {
	if len(opts.Scenarios) == 0 {
		return nil, errors.New("no scenarios configured")
	}
	if err := dataset.Validate(opts.Intersections, opts.Scenarios); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	s := &Simulation{
		intersections: opts.Intersections,
		scenarios:     make(map[string]models.Scenario, len(opts.Scenarios)),
		rng:           opts.Rand,
		now:           opts.Now,
		loc:           opts.Location,
		speed:         opts.Speed,
		playing:       true,
	}
	for _, sc := range opts.Scenarios {
		if _, dup := s.scenarios[sc.ID]; dup {
			return nil, fmt.Errorf("duplicate scenario id %q", sc.ID)
		}
		s.scenarios[sc.ID] = sc
		s.order = append(s.order, sc.ID)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.speed == 0 {
		s.speed = 1
	}
	if err := checkSpeed(s.speed); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectScenario makes id the active scenario: its static routes replace the
// route set, all tokens are dropped and the clock is reset. Unknown ids are
// ignored. The returned generation identifies this selection.
func (s *Simulation) SelectScenario(id string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return s.generation, false
	}
	s.scenario = sc
	s.generation++
	s.routes = models.CloneRoutes(sc.Routes)
	s.vehicles = nil
	s.clock = InitialClock(sc, s.now().In(s.loc))

	scenarioSelections.WithLabelValues(id).Inc()
	vehiclesActive.Set(0)
	return s.generation, true
}

// ApplyRoutes replaces the route set if gen is still the active selection.
// Results requested for an older selection are dropped.
func (s *Simulation) ApplyRoutes(gen uint64, routes []models.Route) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.routes = lo.Filter(models.CloneRoutes(routes), func(r models.Route, _ int) bool {
		_, err := s.intersections.Resolve(r.PathNodes)
		return len(r.PathNodes) >= 2 && err == nil
	})
	return true
}

// Perturb jitters the counts of a real-time scenario around their static
// values, mimicking a changing live feed. It reports whether anything
// changed.
func (s *Simulation) Perturb() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scenario.Realtime {
		return false
	}
	base := lo.KeyBy(s.scenario.Routes, func(r models.Route) int { return r.ID })
	for i := range s.routes {
		count := s.routes[i].Count
		if b, ok := base[s.routes[i].ID]; ok {
			count = b.Count
		}
		delta := int(math.Floor(s.rng.Float64()*10 - 5))
		s.routes[i].Count = max(1, count+delta)
	}
	return len(s.routes) > 0
}

// Step runs one frame: clock, spawning, then movement and retirement. It is
// a no-op while paused.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.frame++
	framesTotal.Inc()
	if s.frame%FramesPerClockTick == 0 {
		s.clock = advanceClock(s.clock, s.speed, s.scenario)
	}
	s.spawn()
	s.advanceVehicles()
	vehiclesActive.Set(float64(len(s.vehicles)))
}

func (s *Simulation) spawn() {
	for _, r := range s.routes {
		p := float64(r.Count) / SpawnDivisor * s.speed
		if s.rng.Float64() < p {
			s.addVehicle(r)
		}
	}
}

func (s *Simulation) addVehicle(r models.Route) *Vehicle {
	path, err := s.intersections.Resolve(r.PathNodes)
	if err != nil {
		return nil
	}
	v := &Vehicle{
		ID:    uuid.NewString(),
		Route: r.Clone(),
		path:  path,
	}
	s.vehicles = append(s.vehicles, v)
	vehiclesSpawned.Inc()
	return v
}

func (s *Simulation) advanceVehicles() {
	step := ProgressStep * s.speed
	kept := s.vehicles[:0]
	for _, v := range s.vehicles {
		v.Progress += step
		if v.Progress >= 1 {
			vehiclesRetired.Inc()
			continue
		}
		kept = append(kept, v)
	}
	clear(s.vehicles[len(kept):])
	s.vehicles = kept
}

func (s *Simulation) SetPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = playing
}

// TogglePlaying flips the play state and returns the new one.
func (s *Simulation) TogglePlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = !s.playing
	return s.playing
}

func (s *Simulation) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

func (s *Simulation) SetSpeed(speed float64) error {
	if err := checkSpeed(speed); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
	return nil
}

func (s *Simulation) Speed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

func checkSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	return nil
}

func (s *Simulation) Clock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

func (s *Simulation) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Active returns the active scenario (with its static routes).
func (s *Simulation) Active() models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenario
}

func (s *Simulation) Routes() []models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneRoutes(s.routes)
}

func (s *Simulation) VehicleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

func (s *Simulation) Intersections() models.Intersections {
	return s.intersections
}

// Scenario looks up a configured scenario by id.
func (s *Simulation) Scenario(id string) (models.Scenario, bool) {
	sc, ok := s.scenarios[id]
	return sc, ok
}

// Scenarios lists the configured scenarios in their configured order.
func (s *Simulation) Scenarios() []models.Scenario {
	return lo.Map(s.order, func(id string, _ int) models.Scenario { return s.scenarios[id] })
}

func (s *Simulation) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Generation: s.generation,
		Scenario:   s.scenario,
		Clock:      s.clock,
		Frame:      s.frame,
		Playing:    s.playing,
		Speed:      s.speed,
		Routes:     models.CloneRoutes(s.routes),
		Vehicles: lo.Map(s.vehicles, func(v *Vehicle, _ int) VehicleState {
			return VehicleState{
				ID:       v.ID,
				RouteID:  v.Route.ID,
				Progress: v.Progress,
				Position: v.Position(),
			}
		}),
	}
}

// TopRoutes returns the n busiest routes, busiest first. Ties keep their
// input order.
func TopRoutes(routes []models.Route, n int) []models.Route {
	sorted := models.CloneRoutes(routes)
	slices.SortStableFunc(sorted, func(a, b models.Route) int { return b.Count - a.Count })
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
