package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jwhitfield/baseline-api/internal/apperr"
	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/config"
)

// RateLimiter is a fixed-window request limiter keyed by client IP. Counters
// reset when their window rolls over; requests beyond the ceiling are
// rejected with 429 and a Retry-After header.
type RateLimiter struct {
	window     time.Duration
	max        int
	production bool
	now        func() time.Time

	mu       sync.Mutex
	counters map[string]*windowCounter
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a RateLimiter from configuration. A zero window or
// ceiling disables limiting entirely.
func NewRateLimiter(cfg config.RateLimitConfig, production bool) *RateLimiter {
	return &RateLimiter{
		window:     time.Duration(cfg.WindowSeconds) * time.Second,
		max:        cfg.MaxRequests,
		production: production,
		now:        time.Now,
		counters:   make(map[string]*windowCounter),
	}
}

// Limit is the middleware entry point.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if l.window <= 0 || l.max <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := l.allow(clientKey(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			shared.WriteError(w, r,
				apperr.New(apperr.KindRateLimited, "Too many requests, please try again later"),
				l.production)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow counts a request against the client's current window and reports
// whether it fits, along with the time left in the window when it does not.
func (l *RateLimiter) allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowStart) >= l.window {
		// Window rollover is the moment to drop stale counters so the map
		// stays bounded by active clients.
		if !ok && len(l.counters) > 0 {
			l.sweep(now)
		}
		l.counters[key] = &windowCounter{windowStart: now, count: 1}
		return true, 0
	}

	if c.count >= l.max {
		return false, l.window - now.Sub(c.windowStart)
	}

	c.count++
	return true, 0
}

func (l *RateLimiter) sweep(now time.Time) {
	for key, c := range l.counters {
		if now.Sub(c.windowStart) >= l.window {
			delete(l.counters, key)
		}
	}
}

// clientKey derives the limiter key from the request's client address.
// Behind chi's RealIP middleware, RemoteAddr already reflects the forwarded
// client.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
