package middleware

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"sync"
	"time"
	"wayfarer/pkg/utils"
)

// SlidingWindowLimiter tracks request timestamps per client identity and
// rejects clients that exceed the per-window quota. Stale entries are pruned
// lazily on access; no background janitor.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

func (l *SlidingWindowLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	recent := l.hits[client][:0]
	for _, t := range l.hits[client] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[client] = recent
		return false
	}

	l.hits[client] = append(recent, now)
	return true
}

func RateLimitMiddleware(limiter *SlidingWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.GetHeader("X-API-Key")
		if client == "" {
			client = c.ClientIP()
		}

		if !limiter.Allow(client) {
			utils.RespondError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
