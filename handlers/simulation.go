package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cityflow/simulator/models"
	"cityflow/simulator/simulation"
)

// Controller is the part of the simulation runner the HTTP surface drives.
type Controller interface {
	Snapshot() simulation.Snapshot
	Scenarios() []models.Scenario
	SelectScenario(id string) bool
	TogglePlaying() bool
	SetPlaying(playing bool)
	SetSpeed(speed float64) error
}

type StateResponse struct {
	Scenario     models.Scenario `json:"scenario"`
	Mode         string          `json:"mode"`
	Clock        time.Time       `json:"clock"`
	ClockLabel   string          `json:"clock_label"`
	Frame        uint64          `json:"frame"`
	Playing      bool            `json:"playing"`
	Speed        float64         `json:"speed"`
	RouteCount   int             `json:"route_count"`
	VehicleCount int             `json:"vehicle_count"`
}

func NewStateResponse(snap simulation.Snapshot) StateResponse {
	return StateResponse{
		Scenario:     snap.Scenario,
		Mode:         snap.Scenario.Mode(),
		Clock:        snap.Clock,
		ClockLabel:   simulation.ClockLabel(snap.Clock),
		Frame:        snap.Frame,
		Playing:      snap.Playing,
		Speed:        snap.Speed,
		RouteCount:   len(snap.Routes),
		VehicleCount: len(snap.Vehicles),
	}
}

type SimulationHandler struct {
	ctl Controller
}

func NewSimulationHandler(ctl Controller) *SimulationHandler {
	return &SimulationHandler{ctl: ctl}
}

func (h *SimulationHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, NewStateResponse(h.ctl.Snapshot()))
}

func (h *SimulationHandler) GetScenarios(c *gin.Context) {
	active := h.ctl.Snapshot().Scenario.ID
	type scenarioView struct {
		models.Scenario
		Mode       string `json:"mode"`
		RouteCount int    `json:"route_count"`
		Active     bool   `json:"active"`
	}
	scenarios := h.ctl.Scenarios()
	data := make([]scenarioView, 0, len(scenarios))
	for _, sc := range scenarios {
		data = append(data, scenarioView{
			Scenario:   sc,
			Mode:       sc.Mode(),
			RouteCount: len(sc.Routes),
			Active:     sc.ID == active,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *SimulationHandler) SelectScenario(c *gin.Context) {
	id := c.Param("id")
	if !h.ctl.SelectScenario(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown scenario"})
		return
	}
	c.JSON(http.StatusOK, NewStateResponse(h.ctl.Snapshot()))
}

func (h *SimulationHandler) GetVehicles(c *gin.Context) {
	p := ParsePagination(c)
	c.JSON(http.StatusOK, Page(h.ctl.Snapshot().Vehicles, p))
}

func (h *SimulationHandler) TogglePlayback(c *gin.Context) {
	playing := h.ctl.TogglePlaying()
	c.JSON(http.StatusOK, gin.H{"playing": playing})
}

func (h *SimulationHandler) Play(c *gin.Context) {
	h.ctl.SetPlaying(true)
	c.JSON(http.StatusOK, gin.H{"playing": true})
}

func (h *SimulationHandler) Pause(c *gin.Context) {
	h.ctl.SetPlaying(false)
	c.JSON(http.StatusOK, gin.H{"playing": false})
}

type SpeedRequest struct {
	Speed *float64 `json:"speed" binding:"required"`
}

func (h *SimulationHandler) SetSpeed(c *gin.Context) {
	var req SpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ctl.SetSpeed(*req.Speed); err != nil {
		if errors.Is(err, simulation.ErrInvalidSpeed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set speed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"speed": *req.Speed})
}

// RegisterRoutes mounts the simulation API on r.
func RegisterRoutes(r gin.IRouter, ctl Controller, is models.Intersections) {
	sim := NewSimulationHandler(ctl)
	routes := NewRoutesHandler(ctl, is)

	r.GET("/state", sim.GetState)
	r.GET("/scenarios", sim.GetScenarios)
	r.POST("/scenarios/:id/select", sim.SelectScenario)
	r.GET("/vehicles", sim.GetVehicles)
	r.POST("/playback/toggle", sim.TogglePlayback)
	r.POST("/playback/play", sim.Play)
	r.POST("/playback/pause", sim.Pause)
	r.PUT("/speed", sim.SetSpeed)
	r.GET("/routes", routes.GetRoutes)
	r.GET("/routes/top", routes.GetTopRoutes)
}
