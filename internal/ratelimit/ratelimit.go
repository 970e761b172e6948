package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per client key in memory
type InMemoryLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	r       rate.Limit
	b       int
	ttl     time.Duration
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(20, time.Second, 40) -> 20 requests per second, burst of 40
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &InMemoryLimiter{
		clients: make(map[string]*client),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
		ttl:     10 * time.Minute,
		now:     time.Now,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

// Allow checks if a client is allowed to perform a request
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, exists := l.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// Sweep forgets clients idle for longer than the ttl and reports how many
// were dropped.
func (l *InMemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.ttl)
	dropped := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			dropped++
		}
	}
	return dropped
}
