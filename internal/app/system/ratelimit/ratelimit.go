// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Limiter counts requests per key in fixed windows.
// It is safe for concurrent use.
type Limiter struct {
	counts *cache.Cache
	limit  int           // max requests per window
	window time.Duration // window duration
}

// New creates a new rate limiter.
// limit: maximum requests allowed per window
// window: the time window for counting requests
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		counts: cache.New(window, 2*window),
		limit:  limit,
		window: window,
	}
}

// Allow checks if a request from the given key should be allowed.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	// First request in a window opens it.
	if err := l.counts.Add(key, 1, l.window); err == nil {
		return l.limit > 0
	}
	n, err := l.counts.IncrementInt(key, 1)
	if err != nil {
		// Window expired between Add and IncrementInt.
		l.counts.Set(key, 1, l.window)
		return l.limit > 0
	}
	return n <= l.limit
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	v, ok := l.counts.Get(key)
	if !ok {
		return l.limit
	}
	remaining := l.limit - v.(int)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Middleware rejects requests over the limit, keyed by client IP, and reports
// the budget in X-RateLimit-Limit and X-RateLimit-Remaining. deny writes the
// rejection; when nil a plain 429 is written.
func Middleware(l *Limiter, deny http.HandlerFunc) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(l.window.Seconds()))
	limit := strconv.Itoa(l.limit)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			allowed := l.Allow(ip)
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(l.Remaining(ip)))
			if allowed {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", retryAfter)
			if deny != nil {
				deny(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	// X-Forwarded-For is a comma-separated list, first is client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}
