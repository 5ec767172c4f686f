// rate_limiter.go - Rate limiting to stay under Gemini API request quotas.

package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter is a simple token bucket. One token is consumed per model
// call; tokens refill at a fixed interval.
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a limiter holding at most maxTokens, refilling one
// token every refillRate.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
	}
}

// Wait blocks until a token is available, then consumes it.
func (rl *RateLimiter) Wait() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()

	for rl.tokens <= 0 {
		rl.mu.Unlock()
		time.Sleep(100 * time.Millisecond)
		rl.mu.Lock()
		rl.refillLocked()
	}

	rl.tokens--
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	tokensToAdd := int(now.Sub(rl.lastRefillTime) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefillTime = now
	}
}

// Global limiter shared by identification and chat calls.
// Free-tier flash models allow 15 RPM; 12 tokens with a 5s refill keeps a
// safety margin for bursts and network latency.
var globalRateLimiter = NewRateLimiter(12, 5*time.Second)

// WaitForRateLimit blocks the caller until a request slot is available.
func WaitForRateLimit() {
	globalRateLimiter.Wait()
}
