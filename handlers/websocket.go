package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cityflow/simulator/log"
	"cityflow/simulator/models"
	"cityflow/simulator/simulation"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type frameMessage struct {
	StateResponse
	Routes   []models.Route            `json:"routes"`
	Vehicles []simulation.VehicleState `json:"vehicles"`
}

// LiveWebSocket streams a simulation snapshot every interval until the
// client goes away.
func LiveWebSocket(ctl Controller, interval time.Duration) gin.HandlerFunc {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", log.ErrorField(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			snap := ctl.Snapshot()
			err := conn.WriteJSON(gin.H{
				"type": "snapshot",
				"data": frameMessage{
					StateResponse: NewStateResponse(snap),
					Routes:        snap.Routes,
					Vehicles:      snap.Vehicles,
				},
			})
			if err != nil {
				log.Debug("ws write error", log.ErrorField(err))
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}
}
