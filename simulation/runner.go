package simulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cityflow/simulator/log"
	"cityflow/simulator/models"
)

// Reasons attached to route updates.
const (
	ReasonSelect   = "select"
	ReasonLive     = "live"
	ReasonFallback = "fallback"
	ReasonHistory  = "history"
	ReasonPerturb  = "perturb"
)

// LiveSource fetches live volumes for a route set. A nil result means no live
// data is available and the caller keeps the static counts.
type LiveSource interface {
	FetchLiveVolumes(ctx context.Context, routes []models.Route) []models.Route
}

// HistorySource loads recorded volumes for a historical scenario.
type HistorySource interface {
	ScenarioVolumes(ctx context.Context, sc models.Scenario) ([]models.Route, error)
}

// RouteSink receives every accepted route set replacement.
type RouteSink interface {
	Name() string
	PublishRoutes(ctx context.Context, update RouteUpdate) error
}

type RouteUpdate struct {
	ScenarioID string         `json:"scenario_id"`
	Generation uint64         `json:"generation"`
	Reason     string         `json:"reason"`
	Clock      time.Time      `json:"clock"`
	Routes     []models.Route `json:"routes"`
}

type RunnerOptions struct {
	FrameInterval   time.Duration
	RefreshInterval time.Duration
	PerturbInterval time.Duration
	// LiveEnabled selects the live refresh over perturbation for real-time
	// scenarios.
	LiveEnabled bool
	Live        LiveSource
	History     HistorySource
	Sinks       []RouteSink
}

// Runner drives a Simulation: the frame loop, perturbation, and one data
// task per selected scenario.
type Runner struct {
	sim  *Simulation
	opts RunnerOptions

	base   context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	stopRefresh context.CancelFunc
	tasks       sync.WaitGroup
}

func NewRunner(sim *Simulation, opts RunnerOptions) *Runner {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = time.Minute
	}
	if opts.PerturbInterval <= 0 {
		opts.PerturbInterval = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{sim: sim, opts: opts, base: ctx, cancel: cancel}
}

func (r *Runner) Simulation() *Simulation {
	return r.sim
}

// Run selects the initial scenario and animates it until ctx is done.
func (r *Runner) Run(ctx context.Context, scenarioID string) error {
	if !r.SelectScenario(scenarioID) {
		return fmt.Errorf("unknown scenario %q", scenarioID)
	}
	defer r.shutdown()

	log.Info("simulation running",
		log.String("scenario", scenarioID),
		log.Duration("frame_interval", r.opts.FrameInterval),
		log.Bool("live", r.opts.LiveEnabled))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.frameLoop(ctx) })
	g.Go(func() error { return r.perturbLoop(ctx) })
	return g.Wait()
}

func (r *Runner) shutdown() {
	r.cancel()
	r.tasks.Wait()
	log.Info("simulation stopped")
}

func (r *Runner) frameLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sim.Step()
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Runner) perturbLoop(ctx context.Context) error {
	if r.opts.LiveEnabled {
		return nil
	}
	ticker := time.NewTicker(r.opts.PerturbInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			gen := r.sim.Generation()
			if r.sim.Perturb() {
				routeUpdates.WithLabelValues(ReasonPerturb).Inc()
				r.publish(ctx, gen, ReasonPerturb)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SelectScenario switches the active scenario and replaces the data task of
// the previous one. Unknown ids leave everything untouched.
func (r *Runner) SelectScenario(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	gen, ok := r.sim.SelectScenario(id)
	if !ok {
		log.Warn("unknown scenario ignored", log.String("scenario", id))
		return false
	}
	if r.stopRefresh != nil {
		r.stopRefresh()
	}
	ctx, cancel := context.WithCancel(r.base)
	r.stopRefresh = cancel

	sc := r.sim.Active()
	log.Info("scenario selected",
		log.String("scenario", sc.ID),
		log.String("mode", sc.Mode()),
		log.Uint64("generation", gen))

	switch {
	case sc.Realtime && r.opts.LiveEnabled && r.opts.Live != nil:
		r.goTask(func() { r.refreshLoop(ctx, gen, sc) })
	case !sc.Realtime && r.opts.History != nil:
		r.goTask(func() { r.loadHistory(ctx, gen, sc) })
	default:
		r.goTask(func() { r.publish(ctx, gen, ReasonSelect) })
	}
	return true
}

func (r *Runner) goTask(fn func()) {
	r.tasks.Add(1)
	go func() {
		defer r.tasks.Done()
		fn()
	}()
}

func (r *Runner) refreshLoop(ctx context.Context, gen uint64, sc models.Scenario) {
	r.refresh(ctx, gen, sc)

	ticker := time.NewTicker(r.opts.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.refresh(ctx, gen, sc)
		case <-ctx.Done():
			return
		}
	}
}

// refresh runs one live cycle. A cycle without any live data reapplies the
// scenario's static routes.
func (r *Runner) refresh(ctx context.Context, gen uint64, sc models.Scenario) {
	start := time.Now()
	live := r.opts.Live.FetchLiveVolumes(ctx, sc.Routes)
	refreshDuration.Observe(time.Since(start).Seconds())
	if ctx.Err() != nil {
		return
	}

	routes, reason := live, ReasonLive
	if live == nil {
		routes, reason = sc.Routes, ReasonFallback
	}
	if !r.sim.ApplyRoutes(gen, routes) {
		return
	}
	routeUpdates.WithLabelValues(reason).Inc()
	log.Debug("routes refreshed",
		log.String("scenario", sc.ID),
		log.String("reason", reason),
		log.Int("routes", len(routes)),
		log.Duration("took", time.Since(start)))
	r.publish(ctx, gen, reason)
}

func (r *Runner) loadHistory(ctx context.Context, gen uint64, sc models.Scenario) {
	routes, err := r.opts.History.ScenarioVolumes(ctx, sc)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Warn("historical volumes unavailable, keeping static counts",
			log.String("scenario", sc.ID), log.ErrorField(err))
		r.publish(ctx, gen, ReasonSelect)
		return
	}
	if !r.sim.ApplyRoutes(gen, routes) {
		return
	}
	routeUpdates.WithLabelValues(ReasonHistory).Inc()
	r.publish(ctx, gen, ReasonHistory)
}

func (r *Runner) publish(ctx context.Context, gen uint64, reason string) {
	if len(r.opts.Sinks) == 0 {
		return
	}
	snap := r.sim.Snapshot()
	if snap.Generation != gen {
		return
	}
	update := RouteUpdate{
		ScenarioID: snap.Scenario.ID,
		Generation: gen,
		Reason:     reason,
		Clock:      snap.Clock,
		Routes:     snap.Routes,
	}
	for _, sink := range r.opts.Sinks {
		if err := sink.PublishRoutes(ctx, update); err != nil {
			sinkFailures.WithLabelValues(sink.Name()).Inc()
			log.Warn("route update delivery failed",
				log.String("sink", sink.Name()), log.ErrorField(err))
		}
	}
}

func (r *Runner) TogglePlaying() bool {
	return r.sim.TogglePlaying()
}

func (r *Runner) SetPlaying(playing bool) {
	r.sim.SetPlaying(playing)
}

func (r *Runner) SetSpeed(speed float64) error {
	return r.sim.SetSpeed(speed)
}

func (r *Runner) Snapshot() Snapshot {
	return r.sim.Snapshot()
}

func (r *Runner) Scenarios() []models.Scenario {
	return r.sim.Scenarios()
}
