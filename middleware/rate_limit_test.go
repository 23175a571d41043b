package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func rateLimitedRouter(r rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", RateLimit(r, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("Burst Exhaustion Denied", func(t *testing.T) {
		router := rateLimitedRouter(rate.Every(time.Hour), 2)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)

		rec := hit(router, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	})

	t.Run("Limits Are Per IP", func(t *testing.T) {
		router := rateLimitedRouter(rate.Every(time.Hour), 1)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1").Code)

		// A different client still has its full budget.
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)
	})
}
