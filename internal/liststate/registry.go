package liststate

import (
	"context"
	"sync"
	"time"
)

// Registry keeps one controller per key (session fingerprint + list name) so a
// page change in a later request re-derives from the resident dataset instead of
// calling the API again. Idle controllers are evicted after ttl.
type Registry[R any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*registryEntry[R]
	now     func() time.Time
}

type registryEntry[R any] struct {
	ctrl     *Controller[R]
	lastUsed time.Time
}

// NewRegistry returns an empty registry. A non-positive ttl disables eviction.
func NewRegistry[R any](ttl time.Duration) *Registry[R] {
	return &Registry[R]{
		ttl:     ttl,
		entries: make(map[string]*registryEntry[R]),
		now:     time.Now,
	}
}

// Get returns the controller stored under key, building one with build when
// absent or expired. created reports whether build ran.
func (r *Registry[R]) Get(key string, build func() *Controller[R]) (ctrl *Controller[R], created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if e, ok := r.entries[key]; ok && !r.expired(e, now) {
		e.lastUsed = now
		return e.ctrl, false
	}
	ctrl = build()
	r.entries[key] = &registryEntry[R]{ctrl: ctrl, lastUsed: now}
	return ctrl, true
}

// Drop forgets the controller stored under key.
func (r *Registry[R]) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Len returns the number of resident controllers.
func (r *Registry[R]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts idle controllers and returns how many were removed.
func (r *Registry[R]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for key, e := range r.entries {
		if r.expired(e, now) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry[R]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry[R]) expired(e *registryEntry[R], now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastUsed) > r.ttl
}
