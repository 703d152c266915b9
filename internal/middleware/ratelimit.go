package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter throttles chat traffic per client address. The widget has no
// accounts, so the remote host is the best available key.
type RateLimiter struct {
	limit  int
	window time.Duration
	counts map[string]int
	reset  map[string]time.Time
	mu     sync.Mutex
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]int),
		reset:  make(map[string]time.Time),
	}
}

func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)

		rl.mu.Lock()

		// Check if the client's window should reset
		now := time.Now()
		if resetTime, exists := rl.reset[client]; !exists || now.After(resetTime) {
			rl.reset[client] = now.Add(rl.window)
			rl.counts[client] = 0
		}

		if rl.counts[client] >= rl.limit {
			reset := rl.reset[client]
			rl.mu.Unlock()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			http.Error(w, "Rate limit exceeded. Please slow down.", http.StatusTooManyRequests)
			return
		}

		rl.counts[client]++
		limit, remaining, reset := rl.limit, rl.limit-rl.counts[client], rl.reset[client]
		rl.mu.Unlock()

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
