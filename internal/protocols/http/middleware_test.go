package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(perSecond float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(perSecond, burst))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func pingFrom(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	r := rateLimitedRouter(1, 2)

	assert.Equal(t, 200, pingFrom(r, "10.0.0.1:5000"))
	assert.Equal(t, 200, pingFrom(r, "10.0.0.1:5000"))
	assert.Equal(t, 429, pingFrom(r, "10.0.0.1:5000"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := rateLimitedRouter(1, 1)

	// First client exhausts its bucket.
	assert.Equal(t, 200, pingFrom(r, "10.0.0.1:5000"))
	assert.Equal(t, 429, pingFrom(r, "10.0.0.1:5001"))

	// A different client has its own bucket.
	assert.Equal(t, 200, pingFrom(r, "10.0.0.2:5000"))
}
