package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"cityflow/simulator/config"
)

var (
	allowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	allowedHeaders = []string{"Origin", "Content-Type", "Accept"}
)

// ParseOrigins splits a comma separated origin list, dropping blanks.
func ParseOrigins(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ","), func(o string, _ int) (string, bool) {
		o = strings.TrimSpace(o)
		return o, o != ""
	})
}

// SetupCORS lets the map front-end call the simulator API. "*" or an empty
// list allows every origin.
func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	origins := ParseOrigins(cfg.AllowedOrigins)

	if len(origins) == 0 || lo.Contains(origins, "*") {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    allowedMethods,
			AllowHeaders:    allowedHeaders,
			ExposeHeaders:   []string{"Content-Length"},
			MaxAge:          12 * time.Hour,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     allowedMethods,
		AllowHeaders:     allowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
