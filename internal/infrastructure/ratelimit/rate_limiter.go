package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is one refillable bucket.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available. When the bucket is empty it
// returns false and the wait until the next refill.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// RateLimiter keeps one bucket per key. Keys are caller-defined, typically
// a client IP or a "user:action" pair.
type RateLimiter struct {
	buckets    map[string]*TokenBucket
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastSeen   map[string]time.Time
	mutex      sync.RWMutex
}

func NewRateLimiter(maxTokens, refillRate int, refillTime time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastSeen:   make(map[string]time.Time),
	}
}

func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = NewTokenBucket(rl.maxTokens, rl.refillRate, rl.refillTime)
		rl.buckets[key] = bucket
	}
	rl.lastSeen[key] = time.Now()
	rl.mutex.Unlock()

	return bucket.Allow()
}

// StartCleanupRoutine evicts buckets idle for over an hour.
func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-time.Hour)
			rl.mutex.Lock()
			for key, seen := range rl.lastSeen {
				if seen.Before(cutoff) {
					delete(rl.buckets, key)
					delete(rl.lastSeen, key)
				}
			}
			rl.mutex.Unlock()
		}
	}()
}
