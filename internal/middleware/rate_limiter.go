package middleware

import (
	"net/http"
	"sync"
	"time"

	"gympos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// rateLimiter is one limiter instance; each call to RateLimiter gets its own map
// so tests and multiple engines do not share counters.
type rateLimiter struct {
	limit   int
	window  time.Duration
	entries map[string]*rateEntry
	mu      sync.Mutex
}

// RateLimiter returns a per-IP window rate limiter. limit <= 0 disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{limit: limit, window: window, entries: make(map[string]*rateEntry)}
	go rl.purge()

	return func(c *gin.Context) {
		entry := rl.entry(c.ClientIP())

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}

		entry.count++
		if entry.count > rl.limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.WithCode("demasiadas_solicitudes", "Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) entry(ip string) *rateEntry {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	e, ok := rl.entries[ip]
	if !ok {
		e = &rateEntry{}
		rl.entries[ip] = e
	}
	return e
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries so IPs that never return do not pile up.

const purgeInterval = 5 * time.Minute

func (rl *rateLimiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		purged := 0
		for ip, entry := range rl.entries {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(rl.entries, ip)
				purged++
			}
			entry.mu.Unlock()
		}
		remaining := len(rl.entries)
		rl.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
