package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newThrottledRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			c.Set("userIdStr", user)
		}
	})
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func throttledGet(router *gin.Engine, user, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	router.ServeHTTP(w, req)
	return w.Code
}

// Two authenticated callers behind one IP must not share a bucket.
func TestRateLimiterKeysByCaller(t *testing.T) {
	router := newThrottledRouter(NewRateLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, throttledGet(router, "caller-a", "10.0.0.1:4000"))
	assert.Equal(t, http.StatusOK, throttledGet(router, "caller-b", "10.0.0.1:4000"))
	assert.Equal(t, http.StatusTooManyRequests, throttledGet(router, "caller-a", "10.0.0.1:4000"))
	assert.Equal(t, http.StatusTooManyRequests, throttledGet(router, "caller-b", "10.0.0.1:4000"))
}

func TestRateLimiterFallsBackToClientIP(t *testing.T) {
	router := newThrottledRouter(NewRateLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, throttledGet(router, "", "10.0.0.1:4000"))
	assert.Equal(t, http.StatusOK, throttledGet(router, "", "10.0.0.2:4000"))
	assert.Equal(t, http.StatusTooManyRequests, throttledGet(router, "", "10.0.0.1:4001"))
}
