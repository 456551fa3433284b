package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// IPRateLimiter holds rate limiters for each IP address.
// Limiters idle longer than the TTL are evicted.
type IPRateLimiter struct {
	limiters *ttlcache.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
	onReject func()
}

// NewIPRateLimiter creates a new IP-based rate limiter
// rps: requests per second allowed per IP
// burst: maximum burst size
// idle: how long an unused limiter is kept
func NewIPRateLimiter(rps float64, burst int, idle time.Duration) *IPRateLimiter {
	cache := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](idle),
	)

	// Start cleanup goroutine to remove expired limiters
	go cache.Start()

	return &IPRateLimiter{
		limiters: cache,
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// OnReject registers a callback invoked for every rejected request.
func (i *IPRateLimiter) OnReject(fn func()) *IPRateLimiter {
	i.onReject = fn
	return i
}

// Stop stops the eviction goroutine.
func (i *IPRateLimiter) Stop() {
	i.limiters.Stop()
}

// Len returns the number of tracked clients.
func (i *IPRateLimiter) Len() int {
	return i.limiters.Len()
}

// getLimiter returns the rate limiter for an IP address
func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	item, _ := i.limiters.GetOrSet(ip, rate.NewLimiter(i.rps, i.burst))
	return item.Value()
}

// RateLimit middleware limits requests per IP address
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.getLimiter(clientIP(r)).Allow() {
				if limiter.onReject != nil {
					limiter.onReject()
				}
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP takes the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr without port
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
