package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// SecurityConfig bounds the field parameters accepted over HTTP. Discovery
// of primitive roots factors q-1 by trial division and table building is
// linear in n, so unbounded requests would let a single client exhaust the
// server.
type SecurityConfig struct {
	// MaxQ is the largest accepted prime modulus.
	MaxQ uint64
	// MaxN is the largest accepted transform size.
	MaxN uint64
	// MaxRootCount is the largest accepted number of primitive roots per request.
	MaxRootCount int
}

// DefaultSecurityConfig returns the standard parameter bounds.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxQ:         1 << 31,
		MaxN:         1 << 20,
		MaxRootCount: 1000,
	}
}

// SecurityMiddleware sets defensive response headers on every request.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next(w, r)
	}
}

// RateLimiterConfig configures the token-bucket rate limiter.
type RateLimiterConfig struct {
	// Capacity is the maximum number of tokens in the bucket.
	Capacity float64
	// RefillRate is the number of tokens added per second.
	RefillRate float64
}

// DefaultRateLimiterConfig returns the standard rate limit: bursts of 20
// requests, sustained 10 per second.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Capacity:   20,
		RefillRate: 10,
	}
}

// RateLimiter implements a token-bucket rate limiter shared across all
// clients. Derivation requests are CPU-bound, so a single global bucket is
// sufficient to protect the process.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		tokens:     cfg.Capacity,
		capacity:   cfg.Capacity,
		refillRate: cfg.RefillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available.
//
// Returns:
//   - bool: true if the request may proceed.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}
	rl.lastRefill = now

	if rl.tokens < 1 {
		return false
	}
	rl.tokens--
	return true
}

// RateLimitMiddleware rejects requests with 429 when the limiter is
// exhausted.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, fmt.Sprintf("%d Too Many Requests", http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
