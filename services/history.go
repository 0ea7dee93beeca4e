package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cityflow/simulator/config"
	"cityflow/simulator/log"
	"cityflow/simulator/models"
)

const latestVolumesQuery = `
	SELECT DISTINCT ON (route_id) route_id, count
	FROM route_volumes
	WHERE period = $1 AND observed_at BETWEEN $2 AND $3
	ORDER BY route_id, observed_at DESC
`

// HistoryStore reads recorded route volumes from Postgres. It never writes.
type HistoryStore struct {
	pool    *pgxpool.Pool
	periods map[string]config.PeriodConfig
	loc     *time.Location
}

func NewHistoryStore(ctx context.Context, dsn string, periods map[string]config.PeriodConfig, loc *time.Location) (*HistoryStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db pool init failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Info("history store connected")
	return &HistoryStore{pool: pool, periods: periods, loc: loc}, nil
}

func (h *HistoryStore) Close() {
	if h.pool != nil {
		h.pool.Close()
	}
}

func (h *HistoryStore) periodBounds(name string) (time.Time, time.Time, error) {
	if name == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("scenario has no historical period")
	}
	p, ok := h.periods[name]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown historical period %q", name)
	}
	return p.Bounds(h.loc)
}

// ScenarioVolumes returns the scenario's static routes with the latest
// recorded count of each route in the scenario's period.
func (h *HistoryStore) ScenarioVolumes(ctx context.Context, sc models.Scenario) ([]models.Route, error) {
	start, end, err := h.periodBounds(sc.Period)
	if err != nil {
		return nil, err
	}

	rows, err := h.pool.Query(ctx, latestVolumesQuery, sc.Period, start, end)
	if err != nil {
		historyQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("query route_volumes: %w", err)
	}
	defer rows.Close()

	volumes := make(map[int]int)
	for rows.Next() {
		var routeID, count int
		if err := rows.Scan(&routeID, &count); err != nil {
			historyQueries.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("scan route_volumes: %w", err)
		}
		volumes[routeID] = count
	}
	if err := rows.Err(); err != nil {
		historyQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("iterate route_volumes: %w", err)
	}

	historyQueries.WithLabelValues("ok").Inc()
	log.Debug("historical volumes loaded",
		log.String("scenario", sc.ID),
		log.String("period", sc.Period),
		log.Int("rows", len(volumes)))
	return OverlayVolumes(sc.Routes, volumes), nil
}

// OverlayVolumes copies routes and replaces the count of every route that
// has an entry in volumes. Negative counts are clamped to zero.
func OverlayVolumes(routes []models.Route, volumes map[int]int) []models.Route {
	out := models.CloneRoutes(routes)
	for i := range out {
		if v, ok := volumes[out[i].ID]; ok {
			out[i].Count = max(0, v)
		}
	}
	return out
}
