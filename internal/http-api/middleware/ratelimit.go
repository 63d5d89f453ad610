package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key token buckets. Each unique key gets its
// own independent limiter. Keys here are client IPs, so entries are swept
// after an idle period to keep the map from growing for the process lifetime.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// NewKeyedRateLimiter creates a limiter allowing rps requests per second
// with the given burst per key, and starts the idle-entry sweeper.
func NewKeyedRateLimiter(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}

	go krl.sweep()

	return krl
}

// Allow checks if a request for the given key should be allowed. Returns
// immediately without blocking.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Stop shuts down the sweeper goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()

	// Fast path: read lock
	krl.mu.RLock()
	entry, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		krl.mu.Lock()
		entry.lastSeen = now
		krl.mu.Unlock()
		return entry.limiter
	}

	// Slow path: write lock to create
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if entry, exists = krl.limiters[key]; exists {
		entry.lastSeen = now
		return entry.limiter
	}

	entry = &limiterEntry{
		limiter:  rate.NewLimiter(krl.limit, krl.burst),
		lastSeen: now,
	}
	krl.limiters[key] = entry
	return entry.limiter
}

func (krl *KeyedRateLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.removeIdle(limiterIdleTTL)
		}
	}
}

// removeIdle drops entries not seen within maxIdle. A dropped key that
// returns simply gets a fresh bucket.
func (krl *KeyedRateLimiter) removeIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	krl.mu.Lock()
	defer krl.mu.Unlock()

	for key, entry := range krl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(krl.limiters, key)
		}
	}
}

// RateLimit throttles requests per client IP.
func RateLimit(limiter *KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
