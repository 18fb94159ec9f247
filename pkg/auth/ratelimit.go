package auth

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a per-subject request rate using token buckets.
// Limiters are created lazily and kept in memory for the process
// lifetime; this is per-instance limiting, not a distributed quota.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst. A non-positive rate disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the subject may proceed.
func (l *RateLimiter) Allow(subject string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[subject]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[subject] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
