package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func login(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, login(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, login(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, login(r, "10.0.0.2"), "other clients keep their own window")
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, login(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "10.0.0.1"))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, login(r, "10.0.0.1"))
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }
	r := newLimitedRouter(rl)

	login(r, "10.0.0.1")
	login(r, "10.0.0.2")
	assert.Len(t, rl.windows, 2)

	now = now.Add(2 * time.Minute)
	login(r, "10.0.0.3")
	assert.Len(t, rl.windows, 1)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(0, time.Minute))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, login(r, "10.0.0.1"))
	}
}
