package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type Limiter interface {
	// Allow records one request from client and reports whether it may proceed.
	// When it may not, the duration until the window resets is returned.
	Allow(client string) (bool, time.Duration)
}

// FixedWindowRateLimiter counts requests per client and resets every count at
// the start of each window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int
	limit   int
	window  time.Duration
	started time.Time
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
		started: time.Now(),
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Allow(client string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.started)
	if elapsed >= rl.window {
		clear(rl.clients)
		rl.started = now
		elapsed = 0
	}

	if rl.clients[client] >= rl.limit {
		return false, rl.window - elapsed
	}
	rl.clients[client]++
	return true, 0
}
