package collector

import (
	"sync"
	"time"
)

// RateLimiter paces outgoing API requests. It is injected into the fetcher so
// the pacing policy lives entirely outside the series core, and each client
// owns its own limiter state.
type RateLimiter interface {
	Wait()
}

// NopLimiter performs no pacing. Used for mocks and tests.
type NopLimiter struct{}

func (NopLimiter) Wait() {}

// TokenBucket is a simple token-bucket limiter.
type TokenBucket struct {
	rate   float64 // tokens per second
	burst  int
	tokens float64
	last   time.Time
	mu     sync.Mutex
}

// NewTokenBucket creates a limiter allowing rate requests per second with the
// given burst capacity.
func NewTokenBucket(rate float64, burst int) *TokenBucket {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:   rate,
		burst:  burst,
		tokens: float64(burst),
		last:   time.Now(),
	}
}

// Wait blocks until a token is available.
func (l *TokenBucket) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(l.last).Seconds()
	l.last = now
	l.tokens += elapsed * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}
	if l.tokens < 1 {
		sleep := time.Duration((1-l.tokens)/l.rate*float64(time.Second)) + time.Millisecond
		l.mu.Unlock()
		time.Sleep(sleep)
		l.mu.Lock()
		l.tokens = 0
		return
	}
	l.tokens--
}
