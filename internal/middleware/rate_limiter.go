package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-IP sliding window limiter. State is in-process, so
// limits apply per instance.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string][]time.Time)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		recent := clients[ip][:0]
		for _, t := range clients[ip] {
			if t.After(cutoff) {
				recent = append(recent, t)
			}
		}
		if len(recent) >= maxRequests {
			clients[ip] = recent
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests"))
			return
		}
		clients[ip] = append(recent, now)
		mu.Unlock()

		c.Next()
	}
}
