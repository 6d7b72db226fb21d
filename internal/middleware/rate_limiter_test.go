package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRateLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	rl := NewRateLimiter(client, RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      window,
	})
	return rl, mr
}

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func doRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsRequestsUnderLimit(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, 5, time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequest(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}
}

func TestRateLimiter_BlocksRequestsOverLimit(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, 5, time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequest(router, "192.168.1.1")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Demasiadas solicitudes")
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, 3, time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doRequest(router, "192.168.1.1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "192.168.1.1").Code)

	// A second IP still has its full budget
	assert.Equal(t, http.StatusOK, doRequest(router, "192.168.1.2").Code)
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, 2, time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	require.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1").Code)

	// Advance miniredis past the window; the counter expires
	mr.FastForward(61 * time.Second)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1").Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	rl, mr := setupTestRateLimiter(t, 1, time.Minute)
	router := rateLimitedRouter(rl)
	mr.Close()

	// Redis unavailable: requests pass through instead of erroring
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.9").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.9").Code)
}
