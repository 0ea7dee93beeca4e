package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cityflow/simulator/config"
	"cityflow/simulator/dataset"
	"cityflow/simulator/handlers"
	"cityflow/simulator/log"
	"cityflow/simulator/middleware"
	"cityflow/simulator/services"
	"cityflow/simulator/simulation"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation and serve the map API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// newRand returns a seeded generator, or nil to let the consumer pick a
// random seed.
func newRand(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, stream))
}

func serve(ctx context.Context, cfg *config.Config) error {
	loc, err := cfg.Simulation.Location()
	if err != nil {
		return err
	}
	is := dataset.Intersections()

	sim, err := simulation.New(simulation.Options{
		Intersections: is,
		Scenarios:     dataset.Scenarios(loc),
		Rand:          newRand(cfg.Simulation.Seed, 1),
		Location:      loc,
		Speed:         cfg.Simulation.Speed,
	})
	if err != nil {
		return err
	}

	cache, err := services.NewCacheService(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn("redis unavailable, continuing without cache", log.ErrorField(err))
	}
	defer cache.Close()

	opts := simulation.RunnerOptions{
		FrameInterval:   cfg.Simulation.FrameInterval,
		RefreshInterval: cfg.Traffic.RefreshInterval,
		PerturbInterval: cfg.Simulation.PerturbInterval,
		LiveEnabled:     cfg.Traffic.LiveEnabled(),
	}
	switch {
	case opts.LiveEnabled:
		flows := services.NewFlowClient(cfg.Traffic, cache)
		opts.Live = services.NewLiveAdapter(cfg.Traffic, is, flows, newRand(cfg.Simulation.Seed, 2))
	case cfg.Traffic.Enabled:
		log.Warn("real-time data requested without a TomTom API key, using simulated data")
	}

	if cfg.History.Source == config.HistoryPostgres {
		store, err := services.NewHistoryStore(ctx, cfg.Database.DSN, cfg.History.Periods, loc)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.History = store
	}

	if cache.Available() {
		opts.Sinks = append(opts.Sinks, services.NewRedisRouteSink(cache, cfg.Redis.Channel))
	}
	if cfg.MQTT.URL != "" {
		pub, err := services.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts.Sinks = append(opts.Sinks, pub)
	}

	runner := simulation.NewRunner(sim, opts)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newRouter(cfg, runner, sim),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(gctx, cfg.Simulation.Scenario)
	})
	g.Go(func() error {
		log.Info("http server listening", log.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("simulator stopped")
	return err
}

func newRouter(cfg *config.Config, runner *simulation.Runner, sim *simulation.Simulation) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.SetupCORS(cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "UP",
			"message":  "Traffic simulator is running",
			"scenario": sim.Active().ID,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	handlers.RegisterRoutes(api, runner, sim.Intersections())
	api.GET("/ws", handlers.LiveWebSocket(runner, cfg.WebSocket.PollInterval()))
	return router
}
