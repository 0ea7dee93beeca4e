package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cityflow/simulator/config"
)

func corsRouter(origins string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SetupCORS(config.CORSConfig{AllowedOrigins: origins}))
	r.GET("/state", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func request(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, ParseOrigins(" http://a , ,http://b "))
	assert.Empty(t, ParseOrigins(""))
}

func TestSetupCORSAllowsAll(t *testing.T) {
	w := request(corsRouter("*"), "http://map.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupCORSRestrictsOrigins(t *testing.T) {
	r := corsRouter("http://localhost:3000, http://map.example.com")

	w := request(r, "http://map.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://map.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(r, "http://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
