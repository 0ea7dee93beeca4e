package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"cityflow/simulator/dataset"
	"cityflow/simulator/models"
	"cityflow/simulator/simulation"
)

const defaultTopRoutes = 5

// RouteView is a route with the map styling hints and geometry the
// front-end draws it with.
type RouteView struct {
	models.Route
	Path    []models.LatLng `json:"path"`
	Color   string          `json:"color"`
	Weight  float64         `json:"weight"`
	LengthM float64         `json:"length_m"`
}

// RouteColor picks the polyline color for a route count.
func RouteColor(count int) string {
	switch {
	case count > 50:
		return "#bd0026"
	case count > 20:
		return "#f03b20"
	case count > 10:
		return "#fd8d3c"
	default:
		return "#feb24c"
	}
}

// RouteWeight is the polyline width, count/10 clamped to [2, 8].
func RouteWeight(count int) float64 {
	return min(max(float64(count)/10, 2), 8)
}

type RoutesHandler struct {
	ctl           Controller
	intersections models.Intersections
}

func NewRoutesHandler(ctl Controller, is models.Intersections) *RoutesHandler {
	return &RoutesHandler{ctl: ctl, intersections: is}
}

func (h *RoutesHandler) view(r models.Route) RouteView {
	path, _ := h.intersections.Resolve(r.PathNodes)
	length, _ := dataset.RouteLengthMeters(h.intersections, r)
	return RouteView{
		Route:   r,
		Path:    path,
		Color:   RouteColor(r.Count),
		Weight:  RouteWeight(r.Count),
		LengthM: length,
	}
}

func (h *RoutesHandler) GetRoutes(c *gin.Context) {
	snap := h.ctl.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"scenario": snap.Scenario.ID,
		"data":     lo.Map(snap.Routes, func(r models.Route, _ int) RouteView { return h.view(r) }),
	})
}

func (h *RoutesHandler) GetTopRoutes(c *gin.Context) {
	n := defaultTopRoutes
	if nStr := c.Query("n"); nStr != "" {
		v, err := strconv.Atoi(nStr)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid n parameter, must be a positive integer"})
			return
		}
		n = min(v, MaxLimit)
	}

	snap := h.ctl.Snapshot()
	top := simulation.TopRoutes(snap.Routes, n)
	c.JSON(http.StatusOK, gin.H{
		"scenario": snap.Scenario.ID,
		"data":     lo.Map(top, func(r models.Route, _ int) RouteView { return h.view(r) }),
	})
}
