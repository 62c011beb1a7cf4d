// Package ratelimit throttles public form submissions per client.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Memory is a process-local sliding-window limiter.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

var _ Limiter = (*Memory)(nil)

// NewMemory allows limit requests per window for each key.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
	}
}

// prune drops timestamps outside the window; in-place filter on the shared
// backing array.
func prune(ts []time.Time, windowStart time.Time) []time.Time {
	valid := ts[:0]
	for _, t := range ts {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

func (m *Memory) Allow(ctx context.Context, key string) (Decision, error) {
	now := m.now()
	windowStart := now.Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	ts := prune(m.clients[key], windowStart)
	if len(ts) >= m.limit {
		m.clients[key] = ts
		return Decision{RetryAfter: ts[0].Add(m.window).Sub(now)}, nil
	}
	ts = append(ts, now)
	m.clients[key] = ts
	return Decision{Allowed: true, Remaining: m.limit - len(ts)}, nil
}

// Cleanup removes keys with no requests inside the window.
func (m *Memory) Cleanup() {
	windowStart := m.now().Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, ts := range m.clients {
		ts = prune(ts, windowStart)
		if len(ts) == 0 {
			delete(m.clients, key)
			continue
		}
		m.clients[key] = ts
	}
}

// Run calls Cleanup every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
