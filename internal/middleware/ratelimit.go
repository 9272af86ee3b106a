package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estudo-naturalistico/dashboard-backend-go/pkg/response"
)

// window is one client's request count in the current period
type window struct {
	start time.Time
	count int
}

// RateLimiter counts requests per client in fixed windows.
// Expired windows are swept lazily on the next request after a full period.
type RateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	lastSweep time.Time
}

// NewRateLimiter allows limit requests per client every period
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow records a request from client and reports whether it is within the limit
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.period {
		rl.sweep(now)
	}

	w, ok := rl.clients[client]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.clients[client] = &window{start: now, count: 1}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

func (rl *RateLimiter) sweep(now time.Time) {
	for client, w := range rl.clients {
		if now.Sub(w.start) >= rl.period {
			delete(rl.clients, client)
		}
	}
	rl.lastSweep = now
}

// RateLimit limits requests per client IP. A non-positive limit or period
// disables limiting.
func RateLimit(limit int, period time.Duration) gin.HandlerFunc {
	if limit <= 0 || period <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(limit, period)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			log.Printf("[RateLimit] %s over %d requests per %s", c.ClientIP(), limit, period)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
