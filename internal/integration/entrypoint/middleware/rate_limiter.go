package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
)

// window counts the attempts of one client inside a fixed window.
type window struct {
	attempts int
	expires  time.Time
}

// RateLimiter limits login attempts per client IP with fixed windows.
// Expired windows are swept once per window length, on the next request.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	length    time.Duration
	nextSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing limit attempts per length.
// A non-positive limit disables it.
func NewRateLimiter(limit int, length time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		length:  length,
		now:     time.Now,
	}
}

// Middleware rejects clients over the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Envelope{
				Title:   "Muitas tentativas",
				Message: string(domainerror.ErrCodeRateLimited) + ": tente novamente em instantes",
				Error:   true,
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.After(rl.nextSweep) {
		for key, w := range rl.windows {
			if now.After(w.expires) {
				delete(rl.windows, key)
			}
		}
		rl.nextSweep = now.Add(rl.length)
	}

	w, ok := rl.windows[client]
	if !ok || now.After(w.expires) {
		rl.windows[client] = &window{attempts: 1, expires: now.Add(rl.length)}
		return true
	}
	if w.attempts >= rl.limit {
		return false
	}
	w.attempts++
	return true
}

